package id

import (
	"fmt"
	"math/big"
	"time"
)

// Unit is the resolution of a scheme's clock ticks.
type Unit int

const (
	Millisecond Unit = iota + 1
	Microsecond
)

// String returns the unit name.
func (u Unit) String() string {
	switch u {
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	default:
		return "unknown"
	}
}

// Duration returns the length of one tick.
func (u Unit) Duration() time.Duration {
	if u == Millisecond {
		return time.Millisecond
	}
	return time.Microsecond
}

// Micros converts a tick in this unit to microseconds since the Unix epoch.
func (u Unit) Micros(tick int64) int64 {
	if u == Millisecond {
		return tick * 1000
	}
	return tick
}

// Scheme is an immutable encoding configuration: an ordered alphabet, the
// clock unit of its ticks and an optional field layout.
type Scheme struct {
	name     string
	alphabet string
	base     *big.Int
	baseN    uint64
	index    [256]int16
	unit     Unit
	layout   Layout
}

// NewScheme validates and builds a scheme. The alphabet must be ASCII, hold
// at least two symbols and contain no duplicates. A layout, when present,
// holds the tick field optionally followed by an offset field.
func NewScheme(name, alphabet string, unit Unit, layout Layout) (*Scheme, error) {
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("%s: need at least 2 symbols, got %d: %w", name, len(alphabet), ErrBadAlphabet)
	}
	if unit != Millisecond && unit != Microsecond {
		return nil, fmt.Errorf("%s: unsupported unit %d: %w", name, unit, ErrBadLayout)
	}
	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(layout) > 2 {
		return nil, fmt.Errorf("%s: at most a tick and an offset field, got %d fields: %w", name, len(layout), ErrBadLayout)
	}

	s := &Scheme{
		name:     name,
		alphabet: alphabet,
		baseN:    uint64(len(alphabet)),
		unit:     unit,
		layout:   append(Layout(nil), layout...),
	}
	s.base = new(big.Int).SetUint64(s.baseN)
	for i := range s.index {
		s.index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c >= 0x80 {
			return nil, fmt.Errorf("%s: non-ASCII byte 0x%02x: %w", name, c, ErrBadAlphabet)
		}
		if s.index[c] >= 0 {
			return nil, fmt.Errorf("%s: duplicate symbol %q: %w", name, c, ErrBadAlphabet)
		}
		s.index[c] = int16(i)
	}
	return s, nil
}

// MustScheme is NewScheme for package-level declarations.
func MustScheme(name, alphabet string, unit Unit, layout Layout) *Scheme {
	s, err := NewScheme(name, alphabet, unit, layout)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	// Micro15 renders raw microsecond ticks in base 15.
	Micro15 = MustScheme("micro15", "0123456789abcde", Microsecond, nil)

	// Milli36 packs [timestamp_ms:48][offset:16] and renders it in base 36.
	Milli36 = MustScheme("milli36", "0123456789abcdefghijklmnopqrstuvwxyz", Millisecond, Layout{
		{Name: "timestamp_ms", Bits: 48},
		{Name: "offset", Bits: 16},
	})

	// Micro26 renders raw microsecond ticks over a-z.
	Micro26 = MustScheme("micro26", "abcdefghijklmnopqrstuvwxyz", Microsecond, nil)
)

// BuiltinSchemes returns the built-in schemes in registration order.
func BuiltinSchemes() []*Scheme {
	return []*Scheme{Micro15, Milli36, Micro26}
}

func (s *Scheme) Name() string     { return s.name }
func (s *Scheme) Alphabet() string { return s.alphabet }
func (s *Scheme) Base() int        { return len(s.alphabet) }
func (s *Scheme) Unit() Unit       { return s.unit }

// Layout returns a copy of the field layout; empty for unbounded schemes.
func (s *Scheme) Layout() Layout { return append(Layout(nil), s.layout...) }

// Bounded reports whether values are confined to a fixed bit width.
func (s *Scheme) Bounded() bool { return len(s.layout) > 0 }

// HasOffset reports whether the layout carries a per-tick offset field.
func (s *Scheme) HasOffset() bool { return len(s.layout) == 2 }

// OffsetBits is the width of the offset field, or 0 without one.
func (s *Scheme) OffsetBits() uint {
	if !s.HasOffset() {
		return 0
	}
	return s.layout[1].Bits
}

// Compose builds the identifier value for a tick and offset. The offset is
// ignored by schemes without an offset field.
func (s *Scheme) Compose(tick int64, offset uint64) *big.Int {
	switch len(s.layout) {
	case 0:
		return new(big.Int).SetInt64(tick)
	case 1:
		return s.layout.Pack(uint64(tick))
	default:
		return s.layout.Pack(uint64(tick), offset)
	}
}

// Split is the inverse of Compose. hasOffset is false for schemes without an
// offset field.
func (s *Scheme) Split(v *big.Int) (tick int64, offset uint64, hasOffset bool, err error) {
	if !s.Bounded() {
		if v.Sign() < 0 || !v.IsInt64() {
			return 0, 0, false, fmt.Errorf("%s: %d bits: %w", s.name, v.BitLen(), ErrValueOverflow)
		}
		return v.Int64(), 0, false, nil
	}
	fields, err := s.layout.Unpack(v)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%s: %w", s.name, err)
	}
	if fields[0] > 1<<63-1 {
		return 0, 0, false, fmt.Errorf("%s: tick field exceeds 63 bits: %w", s.name, ErrValueOverflow)
	}
	if len(fields) == 2 {
		return int64(fields[0]), fields[1], true, nil
	}
	return int64(fields[0]), 0, false, nil
}
