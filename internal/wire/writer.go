package wire

import (
	"encoding/binary"
	"io"
	"math"
)

type Writer struct {
	w   io.Writer
	buf [binary.MaxVarintLen64]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) WriteUint8(v uint8) error {
	w.buf[0] = v
	_, err := w.w.Write(w.buf[:1])
	return err
}

func (w *Writer) WriteInt8(v int8) error {
	return w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUInt16(v uint16) error {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	_, err := w.w.Write(w.buf[:2])
	return err
}

func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUInt16(uint16(v))
}

func (w *Writer) WriteUInt32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUInt32(uint32(v))
}

func (w *Writer) WriteUInt64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	_, err := w.w.Write(w.buf[:8])
	return err
}

func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUInt64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUInt32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUInt64(math.Float64bits(v))
}

// WriteUvarint writes an unsigned LEB128 integer.
func (w *Writer) WriteUvarint(v uint64) error {
	n := binary.PutUvarint(w.buf[:], v)
	_, err := w.w.Write(w.buf[:n])
	return err
}

// WriteBytes writes a uvarint length followed by the bytes.
func (w *Writer) WriteBytes(p []byte) error {
	if err := w.WriteUvarint(uint64(len(p))); err != nil {
		return err
	}
	_, err := w.w.Write(p)
	return err
}

func (w *Writer) WriteString(s string) error {
	if err := w.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, s)
	return err
}
