package id

import (
	"fmt"
	"math/big"
)

// Field is one named bit range of a Layout.
type Field struct {
	Name string
	Bits uint
}

// Layout lists fields most significant first. A field value occupies Bits
// bits and is shifted left by the total width of the fields after it:
//
//	milli36: [timestamp_ms:48][offset:16]
//	         63            16 15       0
type Layout []Field

// Width is the total number of bits in the layout.
func (l Layout) Width() uint {
	var w uint
	for _, f := range l {
		w += f.Bits
	}
	return w
}

// Index returns the position of the named field, or -1.
func (l Layout) Index(name string) int {
	for i, f := range l {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Pack combines one value per field, in layout order. Values wider than
// their field are reduced modulo 2^Bits; packing never fails on overflow.
func (l Layout) Pack(values ...uint64) *big.Int {
	if len(values) != len(l) {
		panic(fmt.Sprintf("id: layout has %d fields, got %d values", len(l), len(values)))
	}
	v := new(big.Int)
	var f big.Int
	for i, fld := range l {
		v.Lsh(v, fld.Bits)
		v.Or(v, f.SetUint64(values[i]&fieldMask(fld.Bits)))
	}
	return v
}

// Unpack recovers the field values of v in layout order. It fails with
// ErrValueOverflow when v is negative or wider than the layout.
func (l Layout) Unpack(v *big.Int) ([]uint64, error) {
	if v.Sign() < 0 || uint(v.BitLen()) > l.Width() {
		return nil, fmt.Errorf("%d bits into %d: %w", v.BitLen(), l.Width(), ErrValueOverflow)
	}
	out := make([]uint64, len(l))
	rest := new(big.Int).Set(v)
	var mask, field big.Int
	for i := len(l) - 1; i >= 0; i-- {
		bits := l[i].Bits
		mask.SetUint64(fieldMask(bits))
		out[i] = field.And(rest, &mask).Uint64()
		rest.Rsh(rest, bits)
	}
	return out, nil
}

func (l Layout) validate() error {
	seen := make(map[string]bool, len(l))
	for _, f := range l {
		if f.Bits == 0 || f.Bits > 64 {
			return fmt.Errorf("field %q has %d bits, want 1..64: %w", f.Name, f.Bits, ErrBadLayout)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q: %w", f.Name, ErrBadLayout)
		}
		seen[f.Name] = true
	}
	return nil
}

func fieldMask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}
