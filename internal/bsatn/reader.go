package bsatn

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Reader decodes BSATN-encoded data.
// Like Writer it keeps the first error and refuses further reads afterwards.
type Reader struct {
	r         io.Reader
	bytesRead int
	err       error
}

// NewReader creates a new BSATN Reader that reads from the provided io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Error returns the first error that occurred during reading, if any.
func (r *Reader) Error() error {
	return r.err
}

// BytesRead returns the total number of bytes consumed.
func (r *Reader) BytesRead() int {
	return r.bytesRead
}

// Fail records err as the reader error unless one is already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) raw(p []byte) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.r, p)
	r.bytesRead += n
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrBufferTooSmall
		}
		r.Fail(err)
	}
	return r.err
}

func (r *Reader) u16() uint16 {
	var buf [2]byte
	if r.raw(buf[:]) != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[:])
}

func (r *Reader) u32() uint32 {
	var buf [4]byte
	if r.raw(buf[:]) != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func (r *Reader) u64() uint64 {
	var buf [8]byte
	if r.raw(buf[:]) != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// ReadTag reads the next tag byte.
func (r *Reader) ReadTag() (byte, error) {
	var b [1]byte
	if err := r.raw(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Expect reads a tag and fails unless it equals want.
func (r *Reader) Expect(want byte, typeName string) error {
	got, err := r.ReadTag()
	if err != nil {
		return err
	}
	if got != want {
		r.Fail(&TagError{Type: typeName, Want: want, Got: got})
	}
	return r.err
}

// ReadBool decodes a boolean; the tag carries the value.
func (r *Reader) ReadBool() (bool, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return false, err
	}
	switch tag {
	case TagBoolFalse:
		return false, nil
	case TagBoolTrue:
		return true, nil
	default:
		r.Fail(&TagError{Type: "bool", Want: TagBoolTrue, Got: tag})
		return false, r.err
	}
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.Expect(TagU8, "u8"); err != nil {
		return 0, err
	}
	var b [1]byte
	err := r.raw(b[:])
	return b[0], err
}

func (r *Reader) ReadInt8() (int8, error) {
	if err := r.Expect(TagI8, "i8"); err != nil {
		return 0, err
	}
	var b [1]byte
	err := r.raw(b[:])
	return int8(b[0]), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.Expect(TagU16, "u16"); err != nil {
		return 0, err
	}
	v := r.u16()
	return v, r.err
}

func (r *Reader) ReadInt16() (int16, error) {
	if err := r.Expect(TagI16, "i16"); err != nil {
		return 0, err
	}
	v := r.u16()
	return int16(v), r.err
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.Expect(TagU32, "u32"); err != nil {
		return 0, err
	}
	v := r.u32()
	return v, r.err
}

func (r *Reader) ReadInt32() (int32, error) {
	if err := r.Expect(TagI32, "i32"); err != nil {
		return 0, err
	}
	v := r.u32()
	return int32(v), r.err
}

func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.Expect(TagU64, "u64"); err != nil {
		return 0, err
	}
	v := r.u64()
	return v, r.err
}

func (r *Reader) ReadInt64() (int64, error) {
	if err := r.Expect(TagI64, "i64"); err != nil {
		return 0, err
	}
	v := r.u64()
	return int64(v), r.err
}

func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.Expect(TagF32, "f32"); err != nil {
		return 0, err
	}
	v := r.u32()
	return math.Float32frombits(v), r.err
}

func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.Expect(TagF64, "f64"); err != nil {
		return 0, err
	}
	v := r.u64()
	return math.Float64frombits(v), r.err
}

func (r *Reader) payload() []byte {
	size := r.u32()
	if r.err != nil {
		return nil
	}
	if int(size) > MaxPayloadLen {
		r.Fail(ErrTooLarge)
		return nil
	}
	buf := make([]byte, size)
	if r.raw(buf) != nil {
		return nil
	}
	return buf
}

// ReadString decodes a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	if err := r.Expect(TagString, "string"); err != nil {
		return "", err
	}
	buf := r.payload()
	if r.err != nil {
		return "", r.err
	}
	if !utf8.Valid(buf) {
		r.Fail(ErrInvalidUTF8)
		return "", r.err
	}
	return string(buf), nil
}

// ReadBytes decodes a length-prefixed byte slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	if err := r.Expect(TagBytes, "bytes"); err != nil {
		return nil, err
	}
	buf := r.payload()
	return buf, r.err
}

// ReadArrayHeader reads TagArray and returns the element count.
func (r *Reader) ReadArrayHeader() (int, error) {
	if err := r.Expect(TagArray, "array"); err != nil {
		return 0, err
	}
	n := r.u32()
	return int(n), r.err
}

// ReadStructHeader reads TagStruct and returns the field count.
func (r *Reader) ReadStructHeader() (int, error) {
	if err := r.Expect(TagStruct, "struct"); err != nil {
		return 0, err
	}
	n := r.u32()
	return int(n), r.err
}

// ReadFieldName reads a u8 length-prefixed field name.
func (r *Reader) ReadFieldName() (string, error) {
	var l [1]byte
	if err := r.raw(l[:]); err != nil {
		return "", err
	}
	name := make([]byte, l[0])
	if err := r.raw(name); err != nil {
		return "", err
	}
	return string(name), nil
}

// ReadEnumHeader reads TagEnum and returns the variant index.
func (r *Reader) ReadEnumHeader() (uint32, error) {
	if err := r.Expect(TagEnum, "enum"); err != nil {
		return 0, err
	}
	idx := r.u32()
	return idx, r.err
}
