package transports

import (
	"context"

	"github.com/rzbill/seqid/pkg/id"
)

// Field is one bit field of a scheme layout.
type Field struct {
	Name string `json:"name"`
	Bits uint   `json:"bits"`
}

// SchemeInfo describes a registered scheme.
type SchemeInfo struct {
	Name     string  `json:"name"`
	Alphabet string  `json:"alphabet"`
	Base     int     `json:"base"`
	Unit     string  `json:"unit"`
	Layout   []Field `json:"layout,omitempty"`
}

// Schemes is the scheme listing with the default scheme name.
type Schemes struct {
	Default string       `json:"default"`
	Schemes []SchemeInfo `json:"schemes"`
}

// IDTransport abstracts where the CLI issues and inspects identifiers:
// in-process or against a running server. A nil tz in Describe uses the
// transport's configured zone offset.
type IDTransport interface {
	Generate(ctx context.Context, scheme string, count int) ([]string, error)
	Describe(ctx context.Context, scheme, s string, tz *int) (id.Description, error)
	Schemes(ctx context.Context) (Schemes, error)
}

func newSchemeInfo(s *id.Scheme) SchemeInfo {
	info := SchemeInfo{Name: s.Name(), Alphabet: s.Alphabet(), Base: s.Base(), Unit: s.Unit().String()}
	for _, f := range s.Layout() {
		info.Layout = append(info.Layout, Field{Name: f.Name, Bits: f.Bits})
	}
	return info
}
