package codec

// NewInt8Array, NewInt16Array, ... build a uniformly-typed Array from a Go
// slice. Per spec §4.1, an empty slice is InvalidArgument - represent an
// absent/empty collection as Null instead.

func NewInt8Array(vs []int8) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Byte(v)
	}
	return Array{ElemTag: TagByte, Elems: elems}, nil
}

func NewInt16Array(vs []int16) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Short(v)
	}
	return Array{ElemTag: TagShort, Elems: elems}, nil
}

func NewInt32Array(vs []int32) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Int(v)
	}
	return Array{ElemTag: TagInt, Elems: elems}, nil
}

func NewInt64Array(vs []int64) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Long(v)
	}
	return Array{ElemTag: TagLong, Elems: elems}, nil
}

func NewFloat32Array(vs []float32) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Float(v)
	}
	return Array{ElemTag: TagFloat, Elems: elems}, nil
}

func NewFloat64Array(vs []float64) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Double(v)
	}
	return Array{ElemTag: TagDouble, Elems: elems}, nil
}

// NewStringArray builds the wire's "string-array" special case: an Array
// whose ElemTag is TagString. Spec §4.1 also routes any heterogeneous or
// string-bearing host list through this encoding.
func NewStringArray(vs []string) (Value, error) {
	if len(vs) == 0 {
		return nil, newErr(InvalidArgument, "array must not be empty; use Null")
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = String(v)
	}
	return Array{ElemTag: TagString, Elems: elems}, nil
}

// NewTypedDict builds a TypedDict, rejecting null keys per spec §4.1.
func NewTypedDict(keyTag, valueTag Tag, entries []DictEntry) (Value, error) {
	for _, e := range entries {
		if isNullValue(e.Key) {
			return nil, newErr(InvalidArgument, "null keys are not allowed in a map")
		}
	}
	return TypedDict{KeyTag: keyTag, ValueTag: valueTag, Entries: entries}, nil
}

// NewDict builds a Dict, rejecting null keys per spec §4.1.
func NewDict(entries map[Value]Value) (Value, error) {
	for k := range entries {
		if isNullValue(k) {
			return nil, newErr(InvalidArgument, "null keys are not allowed in a map")
		}
	}
	return Dict(entries), nil
}
