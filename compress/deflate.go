package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/josekit/josezip/errs"
	"github.com/josekit/josezip/format"
)

const (
	// deflateLevel is the fixed compression level. The capability exposes a
	// single algorithm/level pair; levels are not configurable.
	deflateLevel = 5

	// Scratch buffer bounds: the floor is the minimum useful destination for
	// an engine step, the ceiling caps per-call memory on large inputs.
	scratchMinSize = 64
	scratchMaxSize = 64 * 1024
)

// errEngineStall reports a drive-loop consistency violation: the engine
// completed a step without filling the destination buffer and without
// finishing the stream. A well-formed single-shot drive never does this;
// it signals corrupted engine state.
var errEngineStall = errors.New("codec engine stalled: destination buffer not filled")

// DeflateCodec is the raw DEFLATE (RFC 1951) codec registered under the JOSE
// "DEF" token.
//
// The codec is stateless: engine state and the scratch buffer are created per
// call and never outlive it, so a single value is safe for concurrent use
// without locking.
type DeflateCodec struct{}

var _ Codec = (*DeflateCodec)(nil)

// NewDeflateCodec creates a new deflate codec.
func NewDeflateCodec() DeflateCodec {
	return DeflateCodec{}
}

// Compress compresses data into a raw deflate stream, without zlib or gzip
// framing. Empty input is permitted and produces a valid stream that
// round-trips to empty.
//
// On any failure the returned error wraps errs.ErrCompressionFailed and no
// partial output is returned.
func (c DeflateCodec) Compress(data []byte) ([]byte, error) {
	out, err := run(format.DirectionEncode, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailed, err)
	}

	return out, nil
}

// Decompress restores the original bytes from a raw deflate stream.
//
// Empty input fails: decompressing an empty sequence is not well-defined for
// the codec and is treated as a precondition violation, not an empty result.
// On any failure the returned error wraps errs.ErrDecompressionFailed and no
// partial output is returned.
func (c DeflateCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", errs.ErrDecompressionFailed)
	}

	out, err := run(format.DirectionDecode, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressionFailed, err)
	}

	return out, nil
}

// engine is the per-operation state of one single-shot compress or decompress
// over a fully materialized input.
//
// step fills dst as far as the stream allows and reports whether the stream
// is complete. A step that returns done=false must have filled dst entirely;
// anything less is a stall. close releases engine resources and is called
// exactly once per operation.
type engine interface {
	step(dst []byte) (n int, done bool, err error)
	close() error
}

// newEngine creates engine state for one (direction, algorithm) operation.
func newEngine(dir format.Direction, data []byte) (engine, error) {
	switch dir {
	case format.DirectionEncode:
		return newDeflateEngine(data)
	case format.DirectionDecode:
		return newInflateEngine(data), nil
	default:
		return nil, fmt.Errorf("invalid codec direction: %s", dir)
	}
}

// run drives a freshly created engine to completion over data.
//
// It allocates a scratch buffer of max(min(len(data), 64KiB), 64) bytes and
// loops one engine step at a time: a filled scratch is appended to the result
// and reused for the next step; the final, possibly partial, scratch content
// is appended when the engine reports completion. Any engine error, and any
// unfinished step that leaves the scratch short, fails the whole operation
// with no partial result. The engine is torn down on every exit path.
//
// The loop is bounded: every step either fills the scratch or ends the
// stream, so it terminates in at most ceil(outputSize/len(scratch))+1
// iterations.
func run(dir format.Direction, data []byte) (result []byte, err error) {
	eng, err := newEngine(dir, data)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := eng.close(); cerr != nil && err == nil {
			result, err = nil, cerr
		}
	}()

	scratch := make([]byte, scratchSize(len(data)))

	var out []byte
	for {
		n, done, serr := eng.step(scratch)
		if serr != nil {
			return nil, serr
		}
		if done {
			return append(out, scratch[:n]...), nil
		}
		if n != len(scratch) {
			return nil, errEngineStall
		}
		out = append(out, scratch[:n]...)
	}
}

// scratchSize bounds the per-call working buffer: large enough to amortize
// engine call overhead on big inputs, small enough to cap memory on tiny
// ones, with a floor so every step has a minimally sized destination.
func scratchSize(inputLen int) int {
	return max(min(inputLen, scratchMaxSize), scratchMinSize)
}

// inflateEngine decodes a raw deflate stream. Each step fills the destination
// completely unless the stream ends first.
type inflateEngine struct {
	fr io.ReadCloser
}

func newInflateEngine(data []byte) *inflateEngine {
	return &inflateEngine{fr: flate.NewReader(bytes.NewReader(data))}
}

func (e *inflateEngine) step(dst []byte) (int, bool, error) {
	n := 0
	for n < len(dst) {
		m, err := e.fr.Read(dst[n:])
		n += m
		if err == io.EOF {
			return n, true, nil
		}
		if err != nil {
			return n, false, err
		}
	}

	return n, false, nil
}

func (e *inflateEngine) close() error {
	return e.fr.Close()
}

// deflateEngine encodes input into a raw deflate stream at the fixed level.
//
// The flate writer flushes compressed bytes into pending; step feeds it
// destination-sized input chunks so per-call memory stays bounded, then
// drains pending into dst.
type deflateEngine struct {
	src     []byte // unconsumed input
	fw      *flate.Writer
	pending bytes.Buffer // compressed bytes not yet handed to the driver
	closed  bool         // all input consumed and fw closed
}

func newDeflateEngine(data []byte) (*deflateEngine, error) {
	e := &deflateEngine{src: data}

	fw, err := flate.NewWriter(&e.pending, deflateLevel)
	if err != nil {
		return nil, err
	}
	e.fw = fw

	return e, nil
}

func (e *deflateEngine) step(dst []byte) (int, bool, error) {
	for e.pending.Len() < len(dst) && !e.closed {
		if len(e.src) == 0 {
			// All input fed: flush whatever the writer still holds and emit
			// the end-of-stream marker.
			e.closed = true
			if err := e.fw.Close(); err != nil {
				return 0, false, err
			}

			break
		}

		chunk := min(len(e.src), len(dst))
		if _, err := e.fw.Write(e.src[:chunk]); err != nil {
			return 0, false, err
		}
		e.src = e.src[chunk:]
	}

	n, _ := e.pending.Read(dst) // an empty pending buffer reads 0, io.EOF

	return n, e.closed && e.pending.Len() == 0, nil
}

func (e *deflateEngine) close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	return e.fw.Close()
}
