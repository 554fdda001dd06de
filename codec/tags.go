package codec

// Tag is the one-byte wire discriminator written before a Value when its
// type is not already implied by context (an Array element slot, a
// TypedDict column with a non-zero tag, ...).
type Tag byte

// Wire tags, fixed by the protocol this codec talks.
const (
	TagNull              Tag = 42
	TagBool              Tag = 111
	TagByte              Tag = 98
	TagShort             Tag = 107
	TagInt               Tag = 105
	TagLong              Tag = 108
	TagFloat             Tag = 102
	TagDouble            Tag = 100
	TagString            Tag = 115
	TagByteArray         Tag = 120
	TagArray             Tag = 121
	TagDict              Tag = 104
	TagTypedDict         Tag = 68
	TagOperationRequest  Tag = 113
	TagOperationResponse Tag = 112
	TagEventData         Tag = 101
)

// TagHeterogeneous is the TypedDict column tag meaning "every element
// carries its own tag byte", i.e. the column is not uniformly typed.
const TagHeterogeneous Tag = 0

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "Null"
	case TagBool:
		return "Bool"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagString:
		return "String"
	case TagByteArray:
		return "ByteArray"
	case TagArray:
		return "Array"
	case TagDict:
		return "Dict"
	case TagTypedDict:
		return "TypedDict"
	case TagOperationRequest:
		return "OperationRequest"
	case TagOperationResponse:
		return "OperationResponse"
	case TagEventData:
		return "EventData"
	case TagHeterogeneous:
		return "Heterogeneous"
	default:
		return "Unknown"
	}
}
