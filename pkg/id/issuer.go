package id

import "math/big"

// Issuer is the surface one scheme exposes to collaborators: generate,
// encode, decode and describe. Consumers treat generated strings as opaque
// tokens over the scheme alphabet; their length is not fixed.
type Issuer struct {
	scheme        *Scheme
	gen           *Generator
	offsetMinutes int
}

// NewIssuer wraps a generator. offsetMinutes is the zone used by Describe.
func NewIssuer(gen *Generator, offsetMinutes int) *Issuer {
	return &Issuer{scheme: gen.Scheme(), gen: gen, offsetMinutes: offsetMinutes}
}

// Generate issues a new identifier string.
func (i *Issuer) Generate() string {
	return i.scheme.Encode(i.gen.Next())
}

// Encode renders v; see Scheme.Encode.
func (i *Issuer) Encode(v *big.Int) string {
	return i.scheme.Encode(v)
}

// Decode parses s; see Scheme.Decode.
func (i *Issuer) Decode(s string) (*big.Int, error) {
	return i.scheme.Decode(s)
}

// Describe explains s at the issuer's zone offset.
func (i *Issuer) Describe(s string) Description {
	return i.scheme.Describe(s, i.offsetMinutes)
}

func (i *Issuer) Scheme() *Scheme       { return i.scheme }
func (i *Issuer) Generator() *Generator { return i.gen }
func (i *Issuer) OffsetMinutes() int    { return i.offsetMinutes }
