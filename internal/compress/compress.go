// Package compress implements the LZ4 block framing the protocol wraps
// around block bodies: each frame is a CityHash128 checksum, a method
// byte, the compressed and uncompressed sizes, and the payload.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-faster/city"
	"github.com/pierrec/lz4/v4"
)

const (
	MethodNone byte = 0x02
	MethodLZ4  byte = 0x82
)

// headerSize covers the method byte and both size fields. The
// compressed size on the wire includes the header itself.
const headerSize = 9

const checksumSize = 16

// MaxFrameSize limits memory usage on malformed/hostile input.
const MaxFrameSize = 128 << 20 // 128 MiB

var (
	ErrChecksum = errors.New("compress: frame checksum mismatch")
	ErrMethod   = errors.New("compress: unknown compression method")
)

// Writer emits one frame per WriteBlock call.
type Writer struct {
	w io.Writer
	c lz4.Compressor
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBlock compresses data and writes a single frame. Incompressible
// data is framed raw with MethodNone.
func (cw *Writer) WriteBlock(data []byte) error {
	bound := lz4.CompressBlockBound(len(data))
	frame := make([]byte, checksumSize+headerSize+bound)
	body := frame[checksumSize:]

	n, err := cw.c.CompressBlock(data, body[headerSize:])
	if err != nil {
		return fmt.Errorf("compress: lz4: %w", err)
	}

	method := MethodLZ4
	if n == 0 || n >= len(data) {
		method = MethodNone
		n = copy(body[headerSize:headerSize+len(data)], data)
	}

	body = body[:headerSize+n]
	body[0] = method
	binary.LittleEndian.PutUint32(body[1:5], uint32(headerSize+n))
	binary.LittleEndian.PutUint32(body[5:9], uint32(len(data)))

	h := city.CH128(body)
	binary.LittleEndian.PutUint64(frame[0:8], h.Low)
	binary.LittleEndian.PutUint64(frame[8:16], h.High)

	_, err = cw.w.Write(frame[:checksumSize+len(body)])
	return err
}

// Reader streams the uncompressed bytes of consecutive frames.
type Reader struct {
	r    io.Reader
	data []byte
	pos  int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (cr *Reader) Read(p []byte) (int, error) {
	for cr.pos >= len(cr.data) {
		if err := cr.readFrame(); err != nil {
			return 0, err
		}
	}
	n := copy(p, cr.data[cr.pos:])
	cr.pos += n
	return n, nil
}

func (cr *Reader) readFrame() error {
	var head [checksumSize + headerSize]byte
	if _, err := io.ReadFull(cr.r, head[:]); err != nil {
		return err
	}

	method := head[checksumSize]
	compressed := binary.LittleEndian.Uint32(head[checksumSize+1 : checksumSize+5])
	uncompressed := binary.LittleEndian.Uint32(head[checksumSize+5 : checksumSize+9])
	if compressed < headerSize || compressed > MaxFrameSize || uncompressed > MaxFrameSize {
		return fmt.Errorf("compress: bad frame sizes: %d/%d", compressed, uncompressed)
	}

	body := make([]byte, compressed)
	copy(body, head[checksumSize:])
	if _, err := io.ReadFull(cr.r, body[headerSize:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}

	h := city.CH128(body)
	if binary.LittleEndian.Uint64(head[0:8]) != h.Low ||
		binary.LittleEndian.Uint64(head[8:16]) != h.High {
		return ErrChecksum
	}

	switch method {
	case MethodLZ4:
		out := make([]byte, uncompressed)
		n, err := lz4.UncompressBlock(body[headerSize:], out)
		if err != nil {
			return fmt.Errorf("compress: lz4: %w", err)
		}
		if n != int(uncompressed) {
			return fmt.Errorf("compress: short lz4 payload: %d != %d", n, uncompressed)
		}
		cr.data = out
	case MethodNone:
		cr.data = body[headerSize:]
	default:
		return fmt.Errorf("%w: 0x%02x", ErrMethod, method)
	}
	cr.pos = 0
	return nil
}
