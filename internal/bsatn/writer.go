package bsatn

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Writer encodes Go values into BSATN format.
// It wraps an io.Writer and keeps the first error encountered; every method
// becomes a no-op once an error has been recorded.
type Writer struct {
	w            io.Writer
	err          error
	bytesWritten int
}

// NewWriter creates a new BSATN Writer that writes to the provided io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Bytes returns the written bytes if the underlying writer is a *bytes.Buffer.
// It returns nil if the writer is not a *bytes.Buffer or if an error occurred.
func (w *Writer) Bytes() []byte {
	if w.err != nil {
		return nil
	}
	if bb, ok := w.w.(*bytes.Buffer); ok {
		return bb.Bytes()
	}
	return nil
}

// Error returns the first error that occurred during writing, if any.
func (w *Writer) Error() error {
	return w.err
}

// BytesWritten returns the number of bytes successfully written so far.
func (w *Writer) BytesWritten() int {
	return w.bytesWritten
}

// Fail records err as the writer error unless one is already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) raw(p []byte) {
	if w.err != nil || len(p) == 0 {
		return
	}
	n, err := w.w.Write(p)
	w.bytesWritten += n
	w.Fail(err)
}

func (w *Writer) u16(val uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], val)
	w.raw(buf[:])
}

func (w *Writer) u32(val uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	w.raw(buf[:])
}

func (w *Writer) u64(val uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	w.raw(buf[:])
}

// WriteTag writes a single tag byte.
func (w *Writer) WriteTag(tag byte) {
	w.raw([]byte{tag})
}

// WriteBool encodes a boolean value.
func (w *Writer) WriteBool(val bool) {
	if val {
		w.WriteTag(TagBoolTrue)
		return
	}
	w.WriteTag(TagBoolFalse)
}

func (w *Writer) WriteUint8(val uint8) {
	w.raw([]byte{TagU8, val})
}

func (w *Writer) WriteInt8(val int8) {
	w.raw([]byte{TagI8, byte(val)})
}

func (w *Writer) WriteUint16(val uint16) {
	w.WriteTag(TagU16)
	w.u16(val)
}

func (w *Writer) WriteInt16(val int16) {
	w.WriteTag(TagI16)
	w.u16(uint16(val))
}

func (w *Writer) WriteUint32(val uint32) {
	w.WriteTag(TagU32)
	w.u32(val)
}

func (w *Writer) WriteInt32(val int32) {
	w.WriteTag(TagI32)
	w.u32(uint32(val))
}

func (w *Writer) WriteUint64(val uint64) {
	w.WriteTag(TagU64)
	w.u64(val)
}

func (w *Writer) WriteInt64(val int64) {
	w.WriteTag(TagI64)
	w.u64(uint64(val))
}

// WriteFloat32 encodes a float32. NaN payloads are written as-is so that
// hashing a NaN alternative stays deterministic.
func (w *Writer) WriteFloat32(val float32) {
	w.WriteTag(TagF32)
	w.u32(math.Float32bits(val))
}

func (w *Writer) WriteFloat64(val float64) {
	w.WriteTag(TagF64)
	w.u64(math.Float64bits(val))
}

// WriteString encodes a length-prefixed UTF-8 string.
func (w *Writer) WriteString(val string) {
	if w.err != nil {
		return
	}
	if !utf8.ValidString(val) {
		w.Fail(ErrInvalidUTF8)
		return
	}
	if len(val) > MaxPayloadLen {
		w.Fail(ErrTooLarge)
		return
	}
	w.WriteTag(TagString)
	w.u32(uint32(len(val)))
	w.raw([]byte(val))
}

// WriteBytes encodes a length-prefixed byte slice.
func (w *Writer) WriteBytes(val []byte) {
	if w.err != nil {
		return
	}
	if len(val) > MaxPayloadLen {
		w.Fail(ErrTooLarge)
		return
	}
	w.WriteTag(TagBytes)
	w.u32(uint32(len(val)))
	w.raw(val)
}

// WriteNilOption writes TagOptionNone.
func (w *Writer) WriteNilOption() {
	w.WriteTag(TagOptionNone)
}

// WriteSomeTag writes TagOptionSome. The caller writes the payload next.
func (w *Writer) WriteSomeTag() {
	w.WriteTag(TagOptionSome)
}

// WriteArrayHeader writes TagArray and the element count.
func (w *Writer) WriteArrayHeader(count int) {
	w.WriteTag(TagArray)
	w.u32(uint32(count))
}

// WriteStructHeader writes TagStruct and the field count.
// The caller then writes each field name followed by its value.
func (w *Writer) WriteStructHeader(fieldCount int) {
	w.WriteTag(TagStruct)
	w.u32(uint32(fieldCount))
}

// WriteFieldName writes a u8 length-prefixed field name.
func (w *Writer) WriteFieldName(name string) {
	if w.err != nil {
		return
	}
	if len(name) > MaxFieldName {
		w.Fail(Errorf("field name '%s' too long (%d bytes), max %d", name, len(name), MaxFieldName))
		return
	}
	if !utf8.ValidString(name) {
		w.Fail(Errorf("field name '%s' is not valid UTF-8", name))
		return
	}
	w.raw([]byte{byte(len(name))})
	w.raw([]byte(name))
}

// WriteEnumHeader writes TagEnum and the variant index.
// The caller is then responsible for writing the variant's payload.
func (w *Writer) WriteEnumHeader(variantIndex uint32) {
	w.WriteTag(TagEnum)
	w.u32(variantIndex)
}
