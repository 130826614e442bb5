package variant

import (
	"encoding/binary"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/bsatn"
)

// Hash digests the live index together with the live value. The value part
// is the WithHash hook result when the alternative has one and the BSATN
// encoding of the value otherwise, so equal variants hash equally and
// alternatives of the same type at different indices hash differently.
// Negative zeros are encoded as positive zeros since the two compare equal.
// Every valueless variant hashes to the same digest.
func Hash(v *Variant) (uint64, error) {
	d := xxhash.New()
	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], uint64(int64(v.Index())))
	_, _ = d.Write(word[:])
	if v.Valueless() {
		return d.Sum64(), nil
	}

	alt := v.alt()
	if alt.hooks.hash != nil {
		binary.LittleEndian.PutUint64(word[:], alt.hooks.hash(v.storage))
		_, _ = d.Write(word[:])
		return d.Sum64(), nil
	}
	w := bsatn.NewWriter(d)
	bsatn.EncodeValue(w, canonical(reflect.ValueOf(v.storage).Elem()))
	if err := w.Error(); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// canonical returns rv with every float and complex zero made positive. rv is
// returned as is when it holds no floating point value.
func canonical(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.Float() == 0 {
			return reflect.Zero(rv.Type())
		}
	case reflect.Complex64, reflect.Complex128:
		re, im := real(rv.Complex()), imag(rv.Complex())
		if re == 0 || im == 0 {
			if re == 0 {
				re = 0
			}
			if im == 0 {
				im = 0
			}
			out := reflect.New(rv.Type()).Elem()
			out.SetComplex(complex(re, im))
			return out
		}
	case reflect.Interface:
		if !rv.IsNil() {
			return canonical(rv.Elem())
		}
	case reflect.Pointer:
		if !rv.IsNil() && hasFloat(rv.Type().Elem()) {
			out := reflect.New(rv.Type().Elem())
			out.Elem().Set(canonical(rv.Elem()))
			return out
		}
	case reflect.Array, reflect.Slice:
		if !hasFloat(rv.Type().Elem()) || rv.Kind() == reflect.Slice && rv.IsNil() {
			return rv
		}
		var out reflect.Value
		if rv.Kind() == reflect.Array {
			out = reflect.New(rv.Type()).Elem()
		} else {
			out = reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		}
		for i := range rv.Len() {
			out.Index(i).Set(canonical(rv.Index(i)))
		}
		return out
	case reflect.Struct:
		if !hasFloat(rv.Type()) {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(rv)
		for i := range rv.NumField() {
			if rv.Type().Field(i).IsExported() {
				out.Field(i).Set(canonical(rv.Field(i)))
			}
		}
		return out
	}
	return rv
}

// hasFloat reports whether values of typ may contain a float or complex.
func hasFloat(typ reflect.Type) bool {
	return hasFloatSeen(typ, map[reflect.Type]bool{})
}

func hasFloatSeen(typ reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[typ] {
		return false
	}
	seen[typ] = true
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Interface:
		return true
	case reflect.Array, reflect.Slice, reflect.Pointer:
		return hasFloatSeen(typ.Elem(), seen)
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasFloatSeen(typ.Field(i).Type, seen) {
				return true
			}
		}
	}
	return false
}
