package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/go-xwc/internal/wallet/serializer"
)

func TestVarint(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{79, []byte{0x4f}},
		{81, []byte{0x51}},
	}

	for _, tt := range tests {
		w := serializer.NewWriter(0)
		w.WriteVarint(tt.v)
		assert.Equal(t, tt.want, w.Bytes(), "varint %d", tt.v)
	}
}

func TestFixedWidthLittleEndian(t *testing.T) {
	var w serializer.Writer
	w.WriteUint16(0x0102)
	w.WriteUint32(0x03040506)
	w.WriteUint64(0x0708090a0b0c0d0e)
	w.WriteUint8(0xff)

	assert.Equal(t, []byte{
		0x02, 0x01,
		0x06, 0x05, 0x04, 0x03,
		0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08, 0x07,
		0xff,
	}, w.Bytes())
	assert.Equal(t, 15, w.Len())
}

func TestLengthPrefixed(t *testing.T) {
	var w serializer.Writer
	w.WriteString("hi")
	w.WriteBytes([]byte{0xaa, 0xbb, 0xcc})
	w.WriteString("")
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteRaw([]byte{0x01})

	assert.Equal(t, []byte{
		0x02, 'h', 'i',
		0x03, 0xaa, 0xbb, 0xcc,
		0x00,
		0x01,
		0x00,
		0x01,
	}, w.Bytes())
}
