package codec

import "fmt"

// Value is the tagged union the wire codec moves: every variant in spec
// §3's table implements it. A nil Value and Null{} both serialize to the
// single Null byte; decode always returns Null{}.
type Value interface {
	valueTag() Tag
}

// Null is the absent value. It carries no payload on the wire.
type Null struct{}

func (Null) valueTag() Tag { return TagNull }

// Bool is a one-byte boolean.
type Bool bool

func (Bool) valueTag() Tag { return TagBool }

// Byte is an 8-bit signed integer.
type Byte int8

func (Byte) valueTag() Tag { return TagByte }

// Short is a 16-bit signed integer.
type Short int16

func (Short) valueTag() Tag { return TagShort }

// Int is a 32-bit signed integer.
type Int int32

func (Int) valueTag() Tag { return TagInt }

// Long is a 64-bit signed integer.
type Long int64

func (Long) valueTag() Tag { return TagLong }

// Float is a 32-bit IEEE-754 float.
type Float float32

func (Float) valueTag() Tag { return TagFloat }

// Double is a 64-bit IEEE-754 float.
type Double float64

func (Double) valueTag() Tag { return TagDouble }

// String is a UTF-8 string, i16-length-prefixed on the wire.
type String string

func (String) valueTag() Tag { return TagString }

// ByteArray is a raw byte blob, i32-length-prefixed on the wire.
type ByteArray []byte

func (ByteArray) valueTag() Tag { return TagByteArray }

// Array is a uniformly-typed list: ElemTag names the element type
// (one of Byte/Short/Int/Long/Float/Double, or String for a string-array),
// and Elems holds that many values of that concrete type. Arrays are never
// empty on the wire - use Null to represent an absent/empty collection.
type Array struct {
	ElemTag Tag
	Elems   []Value
}

func (Array) valueTag() Tag { return TagArray }

// Dict is a general heterogeneous map: every key and value carries its own
// tag on the wire. Keys must be of a comparable concrete Value type and
// must not be Null.
type Dict map[Value]Value

func (Dict) valueTag() Tag { return TagDict }

// DictEntry is one key/value pair of a TypedDict, kept in a slice (rather
// than a map) so encode order is caller-controlled and reproducible.
type DictEntry struct {
	Key   Value
	Value Value
}

// TypedDict is a map whose key and/or value columns may share a single
// declared tag, omitting the per-element tag byte for that column.
// KeyTag/ValueTag of TagHeterogeneous (0) means "this column is not
// uniformly typed - every element carries its own tag".
type TypedDict struct {
	KeyTag   Tag
	ValueTag Tag
	Entries  []DictEntry
}

func (TypedDict) valueTag() Tag { return TagTypedDict }

// Parameters is the u8-keyed, order-insensitive association attached to
// requests, responses, and events. Duplicate keys on decode overwrite
// prior values (last wins).
type Parameters map[byte]Value

// OperationRequest is a client-to-server call: an op code plus parameters.
type OperationRequest struct {
	OpCode byte
	Params Parameters
}

func (OperationRequest) valueTag() Tag { return TagOperationRequest }

func (r OperationRequest) String() string {
	return fmt.Sprintf("OperationRequest %d: %v", r.OpCode, r.Params)
}

// OperationResponse is a server reply to an OperationRequest.
type OperationResponse struct {
	OpCode       byte
	ReturnCode   int16
	DebugMessage *string
	Params       Parameters
}

func (OperationResponse) valueTag() Tag { return TagOperationResponse }

func (r OperationResponse) String() string {
	msg := ""
	if r.DebugMessage != nil {
		msg = *r.DebugMessage
	}
	return fmt.Sprintf("OperationResponse %d: ReturnCode: %d (%s). Parameters: %v", r.OpCode, r.ReturnCode, msg, r.Params)
}

// EventData is an unsolicited server message: an event code plus parameters.
type EventData struct {
	Code   byte
	Params Parameters
}

func (EventData) valueTag() Tag { return TagEventData }

func (e EventData) String() string {
	return fmt.Sprintf("Event %d: %v", e.Code, e.Params)
}

// AutoInt performs spec §4.1's integer-width inference: it picks the
// narrowest signed variant (Byte/Short/Int/Long) that holds v exactly.
// Use this when the caller's integer has no declared wire width; use the
// Byte/Short/Int/Long constructors directly when it does.
func AutoInt(v int64) Value {
	switch {
	case v >= -(1<<7) && v <= 1<<7-1:
		return Byte(int8(v))
	case v >= -(1<<15) && v <= 1<<15-1:
		return Short(int16(v))
	case v >= -(1<<31) && v <= 1<<31-1:
		return Int(int32(v))
	default:
		return Long(v)
	}
}

// AutoUint64 is AutoInt for a value whose natural type is unsigned. It
// fails per spec §4.1 when the magnitude needs more than 8 bytes, which for
// an unsigned source means it does not fit in an int64.
func AutoUint64(v uint64) (Value, error) {
	if v > 1<<63-1 {
		return nil, newErr(UnsupportedType, "integer magnitude exceeds 8 bytes")
	}
	return AutoInt(int64(v)), nil
}

func isNullValue(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
