package bsatn

import "fmt"

const (
	TagBoolFalse  byte = 0x01
	TagBoolTrue   byte = 0x02
	TagU8         byte = 0x03
	TagI8         byte = 0x04
	TagU16        byte = 0x05
	TagI16        byte = 0x06
	TagU32        byte = 0x07
	TagI32        byte = 0x08
	TagU64        byte = 0x09
	TagI64        byte = 0x0A
	TagF32        byte = 0x0B
	TagF64        byte = 0x0C
	TagString     byte = 0x0D // length prefixed u32 LE
	TagBytes      byte = 0x0E // length prefixed u32 LE
	TagOptionNone byte = 0x10
	TagOptionSome byte = 0x11
	TagStruct     byte = 0x12    // struct: fieldCount u32 then nameLen u8 + name bytes + value
	TagEnum       byte = 0x13    // enum: variantIndex u32 + payload
	TagArray      byte = 0x14    // homogeneous array/slice: count u32 + elements
	MaxPayloadLen int  = 1 << 20 // 1 MiB safety cap for strings/byte slices
	MaxFieldName  int  = 255
)

// TagToString converts a BSATN tag byte to a human-readable name.
func TagToString(tag byte) string {
	switch tag {
	case TagBoolFalse:
		return "TagBoolFalse"
	case TagBoolTrue:
		return "TagBoolTrue"
	case TagU8:
		return "TagU8"
	case TagI8:
		return "TagI8"
	case TagU16:
		return "TagU16"
	case TagI16:
		return "TagI16"
	case TagU32:
		return "TagU32"
	case TagI32:
		return "TagI32"
	case TagU64:
		return "TagU64"
	case TagI64:
		return "TagI64"
	case TagF32:
		return "TagF32"
	case TagF64:
		return "TagF64"
	case TagString:
		return "TagString"
	case TagBytes:
		return "TagBytes"
	case TagOptionNone:
		return "TagOptionNone"
	case TagOptionSome:
		return "TagOptionSome"
	case TagStruct:
		return "TagStruct"
	case TagEnum:
		return "TagEnum"
	case TagArray:
		return "TagArray"
	default:
		return fmt.Sprintf("UnknownTag(0x%x)", tag)
	}
}
