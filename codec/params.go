package codec

import "bytes"

// EncodeParameters appends the wire form of params (an i16 count then that
// many tagged key/value pairs) to a fresh buffer.
func EncodeParameters(params Parameters) ([]byte, error) {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	if err := serializeParameters(w, params); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeParameters reads a Parameters value from the front of buf and
// returns the number of bytes consumed alongside it.
func DecodeParameters(buf []byte) (Parameters, int, error) {
	r := newByteReader(buf)
	params, err := deserializeParameters(r)
	if err != nil {
		return nil, r.pos, err
	}
	return params, r.pos, nil
}
