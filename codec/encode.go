package codec

import (
	"bytes"
	"fmt"
	"sort"
)

// SerializeValue appends the wire form of v to buf. When setType is true a
// one-byte tag is prepended; callers that already know the type from
// context (an Array element, a uniformly-typed TypedDict column) pass
// false.
func SerializeValue(buf *bytes.Buffer, v Value, setType bool) error {
	w := newByteWriter(buf)
	return serialize(w, v, setType)
}

func serialize(w *byteWriter, v Value, setType bool) error {
	if isNullValue(v) {
		if setType {
			w.writeTag(TagNull)
		}
		return nil
	}

	switch val := v.(type) {
	case Bool:
		if setType {
			w.writeTag(TagBool)
		}
		w.writeBool(bool(val))
	case Byte:
		if setType {
			w.writeTag(TagByte)
		}
		w.writeByte(int8(val))
	case Short:
		if setType {
			w.writeTag(TagShort)
		}
		w.writeShort(int16(val))
	case Int:
		if setType {
			w.writeTag(TagInt)
		}
		w.writeInt(int32(val))
	case Long:
		if setType {
			w.writeTag(TagLong)
		}
		w.writeLong(int64(val))
	case Float:
		if setType {
			w.writeTag(TagFloat)
		}
		w.writeFloat(float32(val))
	case Double:
		if setType {
			w.writeTag(TagDouble)
		}
		w.writeDouble(float64(val))
	case String:
		if setType {
			w.writeTag(TagString)
		}
		serializeString(w, string(val))
	case ByteArray:
		if setType {
			w.writeTag(TagByteArray)
		}
		w.writeInt(int32(len(val)))
		w.writeRaw(val)
	case Array:
		if setType {
			w.writeTag(TagArray)
		}
		return serializeArray(w, val)
	case Dict:
		if setType {
			w.writeTag(TagDict)
		}
		return serializeDict(w, val)
	case TypedDict:
		if setType {
			w.writeTag(TagTypedDict)
		}
		return serializeTypedDict(w, val)
	case OperationRequest:
		if setType {
			w.writeTag(TagOperationRequest)
		}
		return serializeOpRequest(w, val)
	case OperationResponse:
		if setType {
			w.writeTag(TagOperationResponse)
		}
		return serializeOpResponse(w, val)
	case EventData:
		if setType {
			w.writeTag(TagEventData)
		}
		return serializeEventData(w, val)
	default:
		return newErr(UnsupportedType, fmt.Sprintf("cannot serialize value of type %T", v))
	}
	return nil
}

func serializeString(w *byteWriter, s string) {
	w.writeShort(int16(len(s)))
	w.writeRaw([]byte(s))
}

func serializeArray(w *byteWriter, a Array) error {
	if len(a.Elems) == 0 {
		return newErr(InvalidArgument, "array must not be empty; use Null")
	}
	w.writeShort(int16(len(a.Elems)))
	w.writeRawByte(byte(a.ElemTag))
	for _, elem := range a.Elems {
		if err := serialize(w, elem, false); err != nil {
			return err
		}
	}
	return nil
}

func serializeDict(w *byteWriter, d Dict) error {
	w.writeShort(int16(len(d)))
	keys := sortedDictKeys(d)
	for _, k := range keys {
		if isNullValue(k) {
			return newErr(InvalidArgument, "null keys are not allowed in a map")
		}
		if err := serialize(w, k, true); err != nil {
			return err
		}
		if err := serialize(w, d[k], true); err != nil {
			return err
		}
	}
	return nil
}

// sortedDictKeys returns Dict's keys sorted by their printed form. Spec §3
// notes key ordering is not observable to the server; sorting just makes
// encode output reproducible for tests and logs. Keys whose printed forms
// are equal (e.g. Byte(1) and Int(1)) have no defined relative order.
func sortedDictKeys(d Dict) []Value {
	keys := make([]Value, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

func serializeTypedDict(w *byteWriter, td TypedDict) error {
	w.writeRawByte(byte(td.KeyTag))
	w.writeRawByte(byte(td.ValueTag))
	w.writeShort(int16(len(td.Entries)))
	for _, e := range td.Entries {
		if isNullValue(e.Key) {
			return newErr(InvalidArgument, "null keys are not allowed in a map")
		}
		if err := serialize(w, e.Key, td.KeyTag == TagHeterogeneous); err != nil {
			return err
		}
		if err := serialize(w, e.Value, td.ValueTag == TagHeterogeneous); err != nil {
			return err
		}
	}
	return nil
}

func serializeOpRequest(w *byteWriter, r OperationRequest) error {
	w.writeRawByte(r.OpCode)
	return serializeParameters(w, r.Params)
}

func serializeOpResponse(w *byteWriter, r OperationResponse) error {
	w.writeByte(int8(r.OpCode))
	w.writeShort(r.ReturnCode)
	if r.DebugMessage == nil || *r.DebugMessage == "" {
		w.writeTag(TagNull)
	} else {
		w.writeTag(TagString)
		serializeString(w, *r.DebugMessage)
	}
	return serializeParameters(w, r.Params)
}

func serializeEventData(w *byteWriter, e EventData) error {
	w.writeRawByte(e.Code)
	return serializeParameters(w, e.Params)
}

func serializeParameters(w *byteWriter, params Parameters) error {
	w.writeShort(int16(len(params)))
	keys := make([]byte, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		w.writeRawByte(k)
		if err := serialize(w, params[k], true); err != nil {
			return err
		}
	}
	return nil
}

// SerializeOperationRequest encodes op as the bytes that follow the
// protocol-message header on the wire (op code then Parameters) - the
// payload enqueue_operation hands to the frame builder.
func SerializeOperationRequest(r OperationRequest) ([]byte, error) {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	if err := serializeOpRequest(w, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
