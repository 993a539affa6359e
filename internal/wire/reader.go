// Package wire implements the byte-level primitives of the native
// protocol: little-endian fixed-width scalars, LEB128 unsigned varints
// and length-prefixed strings over a plain byte stream.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrUvarintTooLong = errors.New("wire: uvarint longer than 10 bytes")
)

// MaxStringSize limits memory usage on malformed/hostile input.
const MaxStringSize = 64 << 20 // 64 MiB

type Reader struct {
	r   io.Reader
	buf [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// ReadFull fills p or fails. A short stream yields io.ErrUnexpectedEOF
// (io.EOF when nothing was read at all).
func (r *Reader) ReadFull(p []byte) error {
	_, err := io.ReadFull(r.r, p)
	return err
}

// ReadByte is required for the uvarint decoder.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.ReadFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadByte()
	return int8(v), err
}

func (r *Reader) ReadUInt16() (uint16, error) {
	if err := r.ReadFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUInt16()
	return int16(v), err
}

func (r *Reader) ReadUInt32() (uint32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUInt32()
	return int32(v), err
}

func (r *Reader) ReadUInt64() (uint64, error) {
	if err := r.ReadFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[:8]), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUInt64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUInt32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUInt64()
	return math.Float64frombits(v), err
}

// ReadUvarint reads an unsigned LEB128 integer: 7 payload bits per byte,
// MSB is the continuation flag. Decoding fails after 10 bytes without a
// terminator.
func (r *Reader) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < 10; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
	return 0, ErrUvarintTooLong
}

// ReadBytes reads a uvarint length followed by that many bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > MaxStringSize {
		return nil, fmt.Errorf("wire: string too large: %d > %d", n, MaxStringSize)
	}
	p := make([]byte, n)
	if err := r.ReadFull(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(p), nil
}
