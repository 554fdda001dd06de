package codec

import (
	"bytes"
	"encoding/binary"
	"math"
)

// byteWriter appends the wire form of scalars to an in-memory buffer. It
// never fails - bytes.Buffer.Write is documented to never return an error -
// so its methods have no return value, keeping call sites in encode.go free
// of error-check noise for the scalar path.
type byteWriter struct {
	buf *bytes.Buffer
}

func newByteWriter(buf *bytes.Buffer) *byteWriter {
	return &byteWriter{buf: buf}
}

func (w *byteWriter) writeTag(t Tag) {
	w.buf.WriteByte(byte(t))
}

// writeRawByte writes a single byte with no sign-wrap applied - used for
// op codes, event codes, and TypedDict column tags, none of which go
// through the signed-wrap rule.
func (w *byteWriter) writeRawByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *byteWriter) writeRaw(b []byte) {
	w.buf.Write(b)
}

func (w *byteWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *byteWriter) writeByte(v int8) {
	w.buf.WriteByte(byte(wrapSigned(int64(v), 8)))
}

func (w *byteWriter) writeShort(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(wrapSigned(int64(v), 16)))
	w.buf.Write(b[:])
}

func (w *byteWriter) writeInt(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(wrapSigned(int64(v), 32)))
	w.buf.Write(b[:])
}

func (w *byteWriter) writeLong(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *byteWriter) writeFloat(v float32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf.Write(b[:])
}

func (w *byteWriter) writeDouble(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

// wrapSigned applies spec §4.1's signed-wrap rule:
// ((v + 2^(bits-1) - 1) mod 2^bits) - (2^(bits-1) - 1)
// It preserves the low-order bits for in-range values and defines the
// result for out-of-range ones. 64-bit values are already exact in a Go
// int64 and pass through unchanged.
func wrapSigned(v int64, bits uint) int64 {
	if bits >= 64 {
		return v
	}
	mod := int64(1) << bits
	half := (int64(1) << (bits - 1)) - 1
	x := (v + half) % mod
	if x < 0 {
		x += mod
	}
	return x - half
}
