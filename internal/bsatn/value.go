package bsatn

import (
	"bytes"
	"reflect"
	"strings"
)

var (
	writerType = reflect.TypeOf((*IStructuralWriter)(nil)).Elem()
	readerType = reflect.TypeOf((*IStructuralReader)(nil)).Elem()
)

// Marshal encodes v into a fresh BSATN byte slice.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	EncodeValue(w, reflect.ValueOf(v))
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalInto decodes buf into the value pointed to by target.
func UnmarshalInto(buf []byte, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Errorf("unmarshal target must be a non-nil pointer, got %T", target)
	}
	r := NewReader(bytes.NewReader(buf))
	DecodeValue(r, rv.Elem())
	if err := r.Error(); err != nil {
		return err
	}
	if r.BytesRead() != len(buf) {
		return Errorf("%d trailing bytes after value", len(buf)-r.BytesRead())
	}
	return nil
}

// fieldName returns the encoded name of a struct field and whether the field
// takes part in encoding at all.
func fieldName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	tag := sf.Tag.Get("bsatn")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return sf.Name, true
}

// EncodeValue writes rv to w using the BSATN tag scheme. Errors are recorded
// on the writer.
func EncodeValue(w *Writer, rv reflect.Value) {
	if w.Error() != nil {
		return
	}
	if !rv.IsValid() {
		w.WriteNilOption()
		return
	}
	if rv.CanInterface() && rv.Type().Implements(writerType) && (rv.Kind() != reflect.Ptr || !rv.IsNil()) {
		w.Fail(rv.Interface().(IStructuralWriter).WriteBSATN(w))
		return
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(writerType) {
		w.Fail(rv.Addr().Interface().(IStructuralWriter).WriteBSATN(w))
		return
	}

	switch rv.Kind() {
	case reflect.Bool:
		w.WriteBool(rv.Bool())
	case reflect.Int8:
		w.WriteInt8(int8(rv.Int()))
	case reflect.Int16:
		w.WriteInt16(int16(rv.Int()))
	case reflect.Int32:
		w.WriteInt32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		w.WriteInt64(rv.Int())
	case reflect.Uint8:
		w.WriteUint8(uint8(rv.Uint()))
	case reflect.Uint16:
		w.WriteUint16(uint16(rv.Uint()))
	case reflect.Uint32:
		w.WriteUint32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64:
		w.WriteUint64(rv.Uint())
	case reflect.Float32:
		w.WriteFloat32(float32(rv.Float()))
	case reflect.Float64:
		w.WriteFloat64(rv.Float())
	case reflect.String:
		w.WriteString(rv.String())
	case reflect.Ptr:
		if rv.IsNil() {
			w.WriteNilOption()
			return
		}
		w.WriteSomeTag()
		EncodeValue(w, rv.Elem())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			w.WriteBytes(rv.Bytes())
			return
		}
		encodeSequence(w, rv)
	case reflect.Array:
		encodeSequence(w, rv)
	case reflect.Struct:
		encodeStruct(w, rv)
	case reflect.Interface:
		if rv.IsNil() {
			w.WriteNilOption()
			return
		}
		EncodeValue(w, rv.Elem())
	default:
		w.Fail(Errorf("%w: %s", ErrUnsupported, rv.Type()))
	}
}

func encodeSequence(w *Writer, rv reflect.Value) {
	w.WriteArrayHeader(rv.Len())
	for i := 0; i < rv.Len(); i++ {
		EncodeValue(w, rv.Index(i))
	}
}

func encodeStruct(w *Writer, rv reflect.Value) {
	rt := rv.Type()
	type field struct {
		name  string
		index int
	}
	fields := make([]field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name, ok := fieldName(rt.Field(i)); ok {
			fields = append(fields, field{name: name, index: i})
		}
	}
	w.WriteStructHeader(len(fields))
	for _, f := range fields {
		w.WriteFieldName(f.name)
		EncodeValue(w, rv.Field(f.index))
	}
}

// DecodeValue reads a BSATN value into rv, which must be settable.
// Errors are recorded on the reader.
func DecodeValue(r *Reader, rv reflect.Value) {
	if r.Error() != nil {
		return
	}
	if !rv.CanSet() {
		r.Fail(Errorf("cannot decode into unsettable %s", rv.Type()))
		return
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(readerType) {
		r.Fail(rv.Addr().Interface().(IStructuralReader).ReadBSATN(r))
		return
	}

	switch rv.Kind() {
	case reflect.Bool:
		v, _ := r.ReadBool()
		rv.SetBool(v)
	case reflect.Int8:
		v, _ := r.ReadInt8()
		rv.SetInt(int64(v))
	case reflect.Int16:
		v, _ := r.ReadInt16()
		rv.SetInt(int64(v))
	case reflect.Int32:
		v, _ := r.ReadInt32()
		rv.SetInt(int64(v))
	case reflect.Int, reflect.Int64:
		v, _ := r.ReadInt64()
		if rv.OverflowInt(v) {
			r.Fail(ErrOverflow)
			return
		}
		rv.SetInt(v)
	case reflect.Uint8:
		v, _ := r.ReadUint8()
		rv.SetUint(uint64(v))
	case reflect.Uint16:
		v, _ := r.ReadUint16()
		rv.SetUint(uint64(v))
	case reflect.Uint32:
		v, _ := r.ReadUint32()
		rv.SetUint(uint64(v))
	case reflect.Uint, reflect.Uint64:
		v, _ := r.ReadUint64()
		if rv.OverflowUint(v) {
			r.Fail(ErrOverflow)
			return
		}
		rv.SetUint(v)
	case reflect.Float32:
		v, _ := r.ReadFloat32()
		rv.SetFloat(float64(v))
	case reflect.Float64:
		v, _ := r.ReadFloat64()
		rv.SetFloat(v)
	case reflect.String:
		v, _ := r.ReadString()
		rv.SetString(v)
	case reflect.Ptr:
		decodeOption(r, rv)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			v, _ := r.ReadBytes()
			rv.SetBytes(v)
			return
		}
		n, err := r.ReadArrayHeader()
		if err != nil {
			return
		}
		if n > MaxPayloadLen {
			r.Fail(ErrTooLarge)
			return
		}
		s := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			DecodeValue(r, s.Index(i))
		}
		rv.Set(s)
	case reflect.Array:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return
		}
		if n != rv.Len() {
			r.Fail(Errorf("array length %d does not match %s", n, rv.Type()))
			return
		}
		for i := 0; i < n; i++ {
			DecodeValue(r, rv.Index(i))
		}
	case reflect.Struct:
		decodeStruct(r, rv)
	default:
		r.Fail(Errorf("%w: %s", ErrUnsupported, rv.Type()))
	}
}

func decodeOption(r *Reader, rv reflect.Value) {
	tag, err := r.ReadTag()
	if err != nil {
		return
	}
	switch tag {
	case TagOptionNone:
		rv.Set(reflect.Zero(rv.Type()))
	case TagOptionSome:
		elem := reflect.New(rv.Type().Elem())
		DecodeValue(r, elem.Elem())
		rv.Set(elem)
	default:
		r.Fail(&TagError{Type: rv.Type().String(), Want: TagOptionSome, Got: tag})
	}
}

func decodeStruct(r *Reader, rv reflect.Value) {
	n, err := r.ReadStructHeader()
	if err != nil {
		return
	}
	rt := rv.Type()
	byName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name, ok := fieldName(rt.Field(i)); ok {
			byName[name] = i
		}
	}
	for i := 0; i < n; i++ {
		name, err := r.ReadFieldName()
		if err != nil {
			return
		}
		idx, ok := byName[name]
		if !ok {
			r.Fail(Errorf("unknown field '%s' for %s", name, rt))
			return
		}
		DecodeValue(r, rv.Field(idx))
	}
}
