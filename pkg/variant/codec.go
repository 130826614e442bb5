package variant

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/bsatn"
)

// WriteBSATN encodes v as a BSATN enum: the live index followed by the live
// value. A valueless variant cannot be encoded.
func (v *Variant) WriteBSATN(w *bsatn.Writer) error {
	if v.Valueless() {
		w.Fail(ErrValueless)
		return ErrValueless
	}
	w.WriteEnumHeader(uint32(v.Index()))
	bsatn.EncodeValue(w, reflect.ValueOf(v.storage).Elem())
	return w.Error()
}

// ReadBSATN decodes a BSATN enum into v, which must have a table. The value
// is decoded before v changes; v is valueless only if constructing the
// decoded alternative fails.
func (v *Variant) ReadBSATN(r *bsatn.Reader) error {
	if v.table == nil {
		return ErrNoTable
	}
	raw, err := r.ReadEnumHeader()
	if err != nil {
		return err
	}
	if int64(raw) >= int64(v.table.Len()) {
		err := fmt.Errorf("%w: variant index %d, table has %d alternatives", bsatn.ErrInvalidTag, raw, v.table.Len())
		r.Fail(err)
		return err
	}
	idx := int(raw)
	alt := &v.table.alts[idx]
	src := alt.hooks.alloc()
	bsatn.DecodeValue(r, reflect.ValueOf(src).Elem())
	if err := r.Error(); err != nil {
		return err
	}
	v.Reset()
	return v.constructMove(idx, src)
}

// MarshalBSATN returns the BSATN encoding of v.
func MarshalBSATN(v *Variant) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.WriteBSATN(bsatn.NewWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBSATN decodes buf into a new Variant of t.
func UnmarshalBSATN(t *Table, buf []byte) (*Variant, error) {
	v := Empty(t)
	r := bsatn.NewReader(bytes.NewReader(buf))
	if err := v.ReadBSATN(r); err != nil {
		return v, err
	}
	if r.BytesRead() != len(buf) {
		return v, bsatn.Errorf("%d trailing bytes after variant", len(buf)-r.BytesRead())
	}
	return v, nil
}
