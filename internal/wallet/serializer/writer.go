// Package serializer implements the little-endian binary layout used for
// operations and transactions.
package serializer

import (
	"encoding/binary"
)

// Writer appends protocol-encoded values to an in-memory buffer.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteVarint writes v as an unsigned LEB128 varint: 7 bits per byte, high bit set on all but the last byte.
func (w *Writer) WriteVarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

// WriteRaw appends b without a length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteBytes appends b prefixed with its varint length.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteVarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteString appends the UTF-8 bytes of s prefixed with their varint length.
func (w *Writer) WriteString(s string) {
	w.WriteVarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBool writes 0x01 for true and 0x00 for false. Optional fields use it as their presence flag.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}
