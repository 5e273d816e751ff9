package compress

import (
	"fmt"

	"github.com/josekit/josezip/format"
)

// Compressor produces a raw DEFLATE (RFC 1951) stream from a fully
// materialized payload.
//
// The interface is single-shot: the whole input must be in memory before the
// call, and the whole output is returned at once. The surrounding message
// pipeline embeds the returned bytes into its envelope and records that
// compression was applied; no framing is added here.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is never modified or retained beyond the call
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Empty input is permitted and yields a valid deflate stream that
	// decompresses back to empty.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores the original payload from a raw DEFLATE stream.
//
// This interface mirrors the Compressor interface. Separate interfaces allow
// the pipeline to grant a component only the direction it needs (a verifier
// decompresses, a producer compresses).
//
// Thread Safety: Decompressor implementations must be safe for concurrent
// use; every call operates on private per-call state.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// The input must be a complete raw deflate stream produced by any
	// RFC 1951 compliant encoder. Empty input is rejected: decompressing an
	// empty sequence is not well-defined for the codec and fails rather than
	// returning empty output.
	//
	// Error conditions:
	//   - Returns error if input is empty
	//   - Returns error if input is corrupted or truncated
	//   - Returns error if input carries zlib or gzip framing
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of the capability.
//
// The message pipeline registers one Codec per compression algorithm token
// and resolves it from the envelope's "zip" header value.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats provides detailed information about compression
// operations.
//
// This is useful for monitoring payload savings in the message pipeline,
// e.g. deciding whether compressing a class of payloads is worth the CPU.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate compression overhead, which deflate can
// produce on small or incompressible payloads.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
//
// Higher values indicate better compression.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (only Deflate is supported)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionDeflate:
		return NewDeflateCodec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionDeflate: NewDeflateCodec(),
}

// GetCodec retrieves the built-in Codec registered for the specified
// compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
