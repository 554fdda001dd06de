package codec

import (
	"fmt"
	"unicode/utf8"
)

// DeserializeValue reads one value from buf. When typeHint is nil, the
// value's own tag byte is consumed first; when typeHint is non-nil (an
// Array element, a uniformly-typed TypedDict column) the value is read as
// that type with no tag byte consumed.
func DeserializeValue(buf []byte, typeHint *Tag) (Value, int, error) {
	r := newByteReader(buf)
	v, err := deserialize(r, typeHint)
	return v, r.pos, err
}

func deserialize(r *byteReader, typeHint *Tag) (Value, error) {
	var tag Tag
	if typeHint != nil {
		tag = *typeHint
	} else {
		t, err := r.readTag()
		if err != nil {
			return nil, err
		}
		tag = t
	}

	switch tag {
	case TagNull:
		return Null{}, nil
	case TagBool:
		b, err := r.readBool()
		return Bool(b), err
	case TagByte:
		b, err := r.readByte()
		return Byte(b), err
	case TagShort:
		v, err := r.readShort()
		return Short(v), err
	case TagInt:
		v, err := r.readInt()
		return Int(v), err
	case TagLong:
		v, err := r.readLong()
		return Long(v), err
	case TagFloat:
		v, err := r.readFloat()
		return Float(v), err
	case TagDouble:
		v, err := r.readDouble()
		return Double(v), err
	case TagString:
		return deserializeString(r)
	case TagByteArray:
		return deserializeByteArray(r)
	case TagArray:
		return deserializeArray(r)
	case TagDict:
		return deserializeDict(r)
	case TagTypedDict:
		return deserializeTypedDict(r)
	case TagOperationRequest:
		return deserializeOpRequestValue(r)
	case TagOperationResponse:
		return deserializeOpResponseValue(r)
	case TagEventData:
		return deserializeEventDataValue(r)
	default:
		return nil, newErr(UnsupportedType, fmt.Sprintf("unknown tag %d", tag))
	}
}

func deserializeString(r *byteReader) (Value, error) {
	s, err := readString(r)
	if err != nil {
		return nil, err
	}
	return String(s), nil
}

func readString(r *byteReader) (string, error) {
	n, err := r.readShort()
	if err != nil {
		return "", err
	}
	b, err := r.readRaw(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", newErr(Utf8Error, "invalid UTF-8 in String")
	}
	return string(b), nil
}

func deserializeByteArray(r *byteReader) (Value, error) {
	n, err := r.readInt()
	if err != nil {
		return nil, err
	}
	b, err := r.readRaw(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return ByteArray(out), nil
}

func deserializeArray(r *byteReader) (Value, error) {
	count, err := r.readShort()
	if err != nil {
		return nil, err
	}
	elemTag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	elems := make([]Value, 0, count)
	for i := int16(0); i < count; i++ {
		v, err := deserialize(r, &elemTag)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return Array{ElemTag: elemTag, Elems: elems}, nil
}

func deserializeDict(r *byteReader) (Value, error) {
	count, err := r.readShort()
	if err != nil {
		return nil, err
	}
	d := make(Dict, count)
	for i := int16(0); i < count; i++ {
		k, err := deserialize(r, nil)
		if err != nil {
			return nil, err
		}
		v, err := deserialize(r, nil)
		if err != nil {
			return nil, err
		}
		d[k] = v
	}
	return d, nil
}

func deserializeTypedDict(r *byteReader) (Value, error) {
	keyTag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	valueTag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	count, err := r.readShort()
	if err != nil {
		return nil, err
	}

	var keyHint, valueHint *Tag
	if keyTag != TagHeterogeneous {
		keyHint = &keyTag
	}
	if valueTag != TagHeterogeneous {
		valueHint = &valueTag
	}

	entries := make([]DictEntry, 0, count)
	for i := int16(0); i < count; i++ {
		k, err := deserialize(r, keyHint)
		if err != nil {
			return nil, err
		}
		v, err := deserialize(r, valueHint)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: k, Value: v})
	}
	return TypedDict{KeyTag: keyTag, ValueTag: valueTag, Entries: entries}, nil
}

func deserializeParameters(r *byteReader) (Parameters, error) {
	count, err := r.readShort()
	if err != nil {
		return nil, err
	}
	params := make(Parameters, count)
	for i := int16(0); i < count; i++ {
		key, err := r.readRawByte()
		if err != nil {
			return nil, err
		}
		v, err := deserialize(r, nil)
		if err != nil {
			return nil, err
		}
		params[key] = v
	}
	return params, nil
}

func deserializeOpRequestValue(r *byteReader) (Value, error) {
	rq, err := decodeOperationRequest(r)
	return rq, err
}

func deserializeOpResponseValue(r *byteReader) (Value, error) {
	rsp, err := decodeOperationResponse(r)
	return rsp, err
}

func deserializeEventDataValue(r *byteReader) (Value, error) {
	ev, err := decodeEventData(r)
	return ev, err
}

func decodeOperationRequest(r *byteReader) (OperationRequest, error) {
	opCode, err := r.readRawByte()
	if err != nil {
		return OperationRequest{}, err
	}
	params, err := deserializeParameters(r)
	if err != nil {
		return OperationRequest{}, err
	}
	return OperationRequest{OpCode: opCode, Params: params}, nil
}

func decodeOperationResponse(r *byteReader) (OperationResponse, error) {
	opCodeSigned, err := r.readByte()
	if err != nil {
		return OperationResponse{}, err
	}
	returnCode, err := r.readShort()
	if err != nil {
		return OperationResponse{}, err
	}
	debugVal, err := deserialize(r, nil)
	if err != nil {
		return OperationResponse{}, err
	}
	var debugMessage *string
	if s, ok := debugVal.(String); ok {
		str := string(s)
		debugMessage = &str
	}
	params, err := deserializeParameters(r)
	if err != nil {
		return OperationResponse{}, err
	}
	return OperationResponse{
		OpCode:       byte(opCodeSigned),
		ReturnCode:   returnCode,
		DebugMessage: debugMessage,
		Params:       params,
	}, nil
}

func decodeEventData(r *byteReader) (EventData, error) {
	code, err := r.readRawByte()
	if err != nil {
		return EventData{}, err
	}
	params, err := deserializeParameters(r)
	if err != nil {
		return EventData{}, err
	}
	return EventData{Code: code, Params: params}, nil
}

// DecodeOperationRequest reads an OperationRequest from payload without a
// leading tag byte - payload is op code then Parameters, as it appears
// nested inside a frame after the 2-byte message header is stripped.
func DecodeOperationRequest(payload []byte) (OperationRequest, error) {
	return decodeOperationRequest(newByteReader(payload))
}

// DecodeOperationResponse reads an OperationResponse from payload without a
// leading tag byte, matching the wire layout that follows the 2-byte
// message header of a type-3 frame.
func DecodeOperationResponse(payload []byte) (OperationResponse, error) {
	return decodeOperationResponse(newByteReader(payload))
}

// DecodeEventData reads an EventData from payload without a leading tag
// byte, matching the wire layout that follows the 2-byte message header of
// a type-4 frame.
func DecodeEventData(payload []byte) (EventData, error) {
	return decodeEventData(newByteReader(payload))
}
