// Package josezip provides the JOSE "DEF" compression capability: single-shot
// raw DEFLATE (RFC 1951) compress and decompress over in-memory payloads.
//
// Message-security pipelines that honor the JOSE "zip" header parameter use
// this package to shrink payloads before signing or encryption, and to
// restore them after verification or decryption. The package produces and
// consumes bare deflate streams — embedding the bytes into an envelope and
// recording that compression was applied is the pipeline's job.
//
// # Basic Usage
//
//	packed, err := josezip.Compress(payload)
//	if err != nil {
//	    return err
//	}
//
//	original, err := josezip.Decompress(packed)
//	if err != nil {
//	    return err
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the compress
// package. For registry-style access by algorithm identifier, use the
// compress and format packages directly.
package josezip

import (
	"github.com/josekit/josezip/compress"
	"github.com/josekit/josezip/format"
)

// Token is the JOSE compression algorithm identifier under which this
// capability is registered, the value carried by the "zip" header parameter.
const Token = "DEF"

// Compress compresses data into a raw deflate stream.
//
// Empty input is permitted and yields a valid stream that decompresses back
// to empty. On failure the error wraps errs.ErrCompressionFailed.
func Compress(data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(format.CompressionDeflate)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress restores the original bytes from a raw deflate stream.
//
// Empty input fails with errs.ErrDecompressionFailed, as do malformed or
// truncated streams.
func Decompress(data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(format.CompressionDeflate)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}
