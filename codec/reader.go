package codec

import (
	"encoding/binary"
	"math"
)

// byteReader is a cursor over a byte slice. Spec §9 calls out that the
// original implementation's buffer-pop approach is O(n^2); this cursor
// advances an index instead of slicing the front off a list, which is the
// same fix called for there, with no change to decode semantics.
type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(b []byte) *byteReader {
	return &byteReader{buf: b}
}

func (r *byteReader) need(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return ErrUnexpectedEOF
	}
	return nil
}

func (r *byteReader) readTag() (Tag, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	t := Tag(r.buf[r.pos])
	r.pos++
	return t, nil
}

func (r *byteReader) readRawByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readBool() (bool, error) {
	b, err := r.readRawByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *byteReader) readByte() (int8, error) {
	b, err := r.readRawByte()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

func (r *byteReader) readShort() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(r.buf[r.pos:]))
	r.pos += 2
	return v, nil
}

func (r *byteReader) readInt() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(r.buf[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *byteReader) readLong() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v, nil
}

func (r *byteReader) readFloat() (float32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.BigEndian.Uint32(r.buf[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *byteReader) readDouble() (float64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v, nil
}

func (r *byteReader) readRaw(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.pos
}
