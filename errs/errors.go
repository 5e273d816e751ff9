// Package errs defines the sentinel errors reported by josezip operations.
//
// Each operation reports exactly one error kind. Callers should branch with
// errors.Is; the wrapped message text is informational only and mirrors the
// coarse status reporting of the underlying codec engine.
package errs

import "errors"

var (
	// ErrCompressionFailed reports that a Compress call failed: engine
	// initialization failed, the drive loop hit an unrecoverable engine
	// error, or output could not be flushed. No partial result is returned.
	ErrCompressionFailed = errors.New("compression failed")

	// ErrDecompressionFailed reports that a Decompress call failed: empty
	// input, a malformed deflate stream, or any engine error. No partial
	// result is returned.
	ErrDecompressionFailed = errors.New("decompression failed")
)
