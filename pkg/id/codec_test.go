package id

import (
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeZero(t *testing.T) {
	tests := []struct {
		scheme *Scheme
		want   string
	}{
		{Micro15, "0"},
		{Milli36, "0"},
		{Micro26, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scheme.Encode(big.NewInt(0)))
			assert.Equal(t, tt.want, tt.scheme.EncodeUint64(0))
		})
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		scheme *Scheme
		value  uint64
		want   string
	}{
		{"micro15 last digit", Micro15, 14, "e"},
		{"micro15 carry", Micro15, 15, "10"},
		{"milli36 last digit", Milli36, 35, "z"},
		{"milli36 carry", Milli36, 36, "10"},
		{"micro26 last digit", Micro26, 25, "z"},
		{"micro26 carry", Micro26, 26, "ba"},
		{"milli36 max word", Milli36, 1<<64 - 1, "3w5e11264sgsf"},
		{"micro15 timestamp", Micro15, 1734422400240900, "d57b490c54aa0"},
		{"micro26 timestamp", Micro26, 1734422400240900, "mhlodvqbnvg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scheme.EncodeUint64(tt.value))
			got, err := tt.scheme.Decode(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got.Uint64())
		})
	}
}

// The 0-9a-e and 0-9a-z alphabets are strconv's digits for bases 15 and 36.
func TestEncodeMatchesStrconv(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		v := rng.Uint64() >> uint(rng.Intn(64))
		require.Equal(t, strconv.FormatUint(v, 15), Micro15.EncodeUint64(v), "value %d", v)
		require.Equal(t, strconv.FormatUint(v, 36), Milli36.EncodeUint64(v), "value %d", v)
	}
}

func TestRoundTripWide(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, s := range BuiltinSchemes() {
		t.Run(s.Name(), func(t *testing.T) {
			for i := 0; i < 500; i++ {
				v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 200))
				enc := s.Encode(v)
				got, err := s.Decode(enc)
				require.NoError(t, err)
				require.Zero(t, v.Cmp(got), "value %s encoded %s", v, enc)
				require.Equal(t, enc, s.Encode(got))
			}
		})
	}
}

func TestEncodeWideMatchesBigText(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890123456789", 10)
	require.True(t, ok)
	assert.Equal(t, v.Text(36), Milli36.Encode(v))
	assert.Equal(t, v.Text(15), Micro15.Encode(v))
}

func TestStringRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, s := range BuiltinSchemes() {
		alpha := s.Alphabet()
		for i := 0; i < 500; i++ {
			var b strings.Builder
			// first symbol is never the zero digit, so the form is canonical
			b.WriteByte(alpha[1+rng.Intn(len(alpha)-1)])
			for n := rng.Intn(30); n > 0; n-- {
				b.WriteByte(alpha[rng.Intn(len(alpha))])
			}
			str := b.String()
			v, err := s.Decode(str)
			require.NoError(t, err)
			require.Equal(t, str, s.Encode(v), "%s: %s", s.Name(), str)
		}
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	tests := []struct {
		name   string
		scheme *Scheme
		input  string
	}{
		{"g outside 0-9a-e", Micro15, "g"},
		{"upper case", Milli36, "ABC"},
		{"digit in a-z", Micro26, "abc1"},
		{"non ascii", Milli36, "12é"},
		{"space", Micro15, "1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.scheme.Decode(tt.input)
			require.ErrorIs(t, err, ErrInvalidCharacter)
			assert.False(t, tt.scheme.Valid(tt.input))
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Milli36.Decode("")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestDecodeLeadingZeros(t *testing.T) {
	v, err := Micro26.Decode("aab")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int64())
	assert.Equal(t, "b", Micro26.Encode(v))
}

func TestEncodeNegativePanics(t *testing.T) {
	assert.Panics(t, func() { Milli36.Encode(big.NewInt(-1)) })
}

func TestNewSchemeRejects(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		layout   Layout
		want     error
	}{
		{"empty", "", nil, ErrBadAlphabet},
		{"single symbol", "a", nil, ErrBadAlphabet},
		{"duplicate", "abca", nil, ErrBadAlphabet},
		{"non ascii", "abé", nil, ErrBadAlphabet},
		{"zero width field", "01", Layout{{Name: "ts", Bits: 0}}, ErrBadLayout},
		{"wide field", "01", Layout{{Name: "ts", Bits: 65}}, ErrBadLayout},
		{"duplicate field", "01", Layout{{Name: "ts", Bits: 8}, {Name: "ts", Bits: 8}}, ErrBadLayout},
		{"three fields", "01", Layout{{Name: "a", Bits: 8}, {Name: "b", Bits: 8}, {Name: "c", Bits: 8}}, ErrBadLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheme("test", tt.alphabet, Millisecond, tt.layout)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
