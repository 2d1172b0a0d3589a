package id

import "errors"

var (
	// ErrInvalidCharacter is returned when decoding a string that contains a
	// character outside the scheme alphabet.
	ErrInvalidCharacter = errors.New("character is not in the scheme alphabet")
	// ErrEmptyInput is returned when decoding an empty string.
	ErrEmptyInput = errors.New("empty identifier")
	// ErrMalformedReadable is returned when a readable timestamp does not match
	// YYYYMMDD_HHMMSSuuuuuu±HH.
	ErrMalformedReadable = errors.New("malformed readable timestamp")
	// ErrValueOverflow is returned when a value is wider than a bounded layout
	// or its tick does not fit in 63 bits.
	ErrValueOverflow = errors.New("value exceeds the layout bit width")
	// ErrUnknownScheme is returned by Registry.Lookup.
	ErrUnknownScheme = errors.New("unknown id scheme")
	// ErrBadAlphabet is returned by NewScheme for unusable alphabets.
	ErrBadAlphabet = errors.New("invalid scheme alphabet")
	// ErrBadLayout is returned by NewScheme for unusable field layouts.
	ErrBadLayout = errors.New("invalid scheme layout")
	// ErrTimestampRange is returned when a timestamp falls outside the
	// displayed years 0000-9999 of the readable form.
	ErrTimestampRange = errors.New("timestamp out of displayable range")
)
