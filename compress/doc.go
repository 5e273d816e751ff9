// Package compress implements the deflate compression capability consumed by
// JOSE-style message-security pipelines.
//
// The package exposes a single algorithm: raw DEFLATE per RFC 1951, at a
// fixed compression level, registered under the JOSE "zip" token "DEF". It is
// deliberately not a general compression library — the pipeline needs exactly
// one codec, resolved by identifier.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// DeflateCodec implements Codec. Both operations are single-shot: the input
// is fully materialized, the output is returned whole, and no engine state
// survives the call.
//
//	codec, _ := compress.GetCodec(format.CompressionDeflate)
//	packed, err := codec.Compress(payload)
//	if err != nil {
//	    return err
//	}
//	original, err := codec.Decompress(packed)
//
// # Wire format
//
// Compress produces a raw deflate stream: no zlib header/trailer, no gzip
// framing, no length prefix. Output interoperates with any RFC 1951 compliant
// decoder; compressed bytes are not canonical, so two encoders may produce
// different streams for the same input.
//
// # Internals
//
// Both directions share one drive loop: a bounded scratch buffer, sized
// between 64 bytes and 64KiB from the input length, is filled by the codec
// engine one step at a time and appended to a growable result until the
// engine signals end of stream. This drains a block-oriented engine without
// knowing the output size up front — unpredictable for compression
// (incompressible data expands) and decompression (expansion ratio unknown).
//
// # Error handling
//
// Exactly two error kinds exist: errs.ErrCompressionFailed and
// errs.ErrDecompressionFailed. Both are terminal for the call — no retries,
// no partial output. Decompressing an empty sequence fails by design; it is
// an engine precondition, not an empty result.
//
// # Thread safety
//
// Codec values hold no state; scratch buffers and engine state are allocated
// per call and never escape it. Concurrent calls need no external locking.
package compress
