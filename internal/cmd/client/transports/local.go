package transports

import (
	"context"

	"github.com/rzbill/seqid/pkg/id"
)

// LocalTransport issues identifiers from an in-process registry. Its
// sequence state lives only as long as the process.
type LocalTransport struct {
	reg *id.Registry
}

func NewLocalTransport(reg *id.Registry) *LocalTransport {
	return &LocalTransport{reg: reg}
}

func (t *LocalTransport) issuer(scheme string) (*id.Issuer, error) {
	if scheme == "" {
		return t.reg.Default(), nil
	}
	return t.reg.Lookup(scheme)
}

// Generate issues count identifiers.
func (t *LocalTransport) Generate(_ context.Context, scheme string, count int) ([]string, error) {
	iss, err := t.issuer(scheme)
	if err != nil {
		return nil, err
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = iss.Generate()
	}
	return ids, nil
}

func (t *LocalTransport) Describe(_ context.Context, scheme, s string, tz *int) (id.Description, error) {
	iss, err := t.issuer(scheme)
	if err != nil {
		return id.Description{}, err
	}
	if tz != nil {
		return iss.Scheme().Describe(s, *tz), nil
	}
	return iss.Describe(s), nil
}

func (t *LocalTransport) Schemes(context.Context) (Schemes, error) {
	out := Schemes{Default: t.reg.Default().Scheme().Name()}
	for _, name := range t.reg.Names() {
		iss, err := t.reg.Lookup(name)
		if err != nil {
			return Schemes{}, err
		}
		out.Schemes = append(out.Schemes, newSchemeInfo(iss.Scheme()))
	}
	return out, nil
}
