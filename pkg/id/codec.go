package id

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"
)

// Encode renders v in the scheme's base, most significant digit first. Zero
// encodes to the first alphabet symbol. v must not be negative.
func (s *Scheme) Encode(v *big.Int) string {
	if v.Sign() < 0 {
		panic(fmt.Sprintf("id: %s cannot encode negative value %s", s.name, v))
	}
	if v.IsUint64() {
		return s.EncodeUint64(v.Uint64())
	}

	n := new(big.Int).Set(v)
	r := new(big.Int)
	digits := make([]byte, 0, n.BitLen())
	for n.Sign() > 0 {
		n.QuoRem(n, s.base, r)
		digits = append(digits, s.alphabet[r.Uint64()])
	}
	reverse(digits)
	return string(digits)
}

// EncodeUint64 is Encode for values that fit a machine word.
func (s *Scheme) EncodeUint64(v uint64) string {
	if v == 0 {
		return s.alphabet[:1]
	}
	// 64 digits covers base 2, the smallest base a scheme may have.
	var buf [64]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = s.alphabet[v%s.baseN]
		v /= s.baseN
	}
	return string(buf[i:])
}

// Decode parses str as a positional number over the scheme alphabet,
// scanning the most significant character first. Leading zero symbols are
// accepted; Encode returns the canonical form without them.
func (s *Scheme) Decode(str string) (*big.Int, error) {
	if str == "" {
		return nil, fmt.Errorf("%s: %w", s.name, ErrEmptyInput)
	}

	var (
		small uint64
		wide  *big.Int
		digit big.Int
	)
	for i := 0; i < len(str); i++ {
		d := s.index[str[i]]
		if d < 0 {
			r, _ := utf8.DecodeRuneInString(str[i:])
			return nil, fmt.Errorf("%s: %q at offset %d: %w", s.name, r, i, ErrInvalidCharacter)
		}
		if wide == nil {
			if small <= (math.MaxUint64-uint64(d))/s.baseN {
				small = small*s.baseN + uint64(d)
				continue
			}
			wide = new(big.Int).SetUint64(small)
		}
		wide.Mul(wide, s.base)
		wide.Add(wide, digit.SetInt64(int64(d)))
	}
	if wide == nil {
		return new(big.Int).SetUint64(small), nil
	}
	return wide, nil
}

// Valid reports whether str is non-empty and uses only the scheme alphabet.
func (s *Scheme) Valid(str string) bool {
	if str == "" {
		return false
	}
	for i := 0; i < len(str); i++ {
		if s.index[str[i]] < 0 {
			return false
		}
	}
	return true
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
