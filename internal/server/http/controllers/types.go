package controllers

import "github.com/rzbill/seqid/pkg/id"

type schemeInfo struct {
	Name     string      `json:"name"`
	Alphabet string      `json:"alphabet"`
	Base     int         `json:"base"`
	Unit     string      `json:"unit"`
	Layout   []fieldInfo `json:"layout,omitempty"`
}

type fieldInfo struct {
	Name string `json:"name"`
	Bits uint   `json:"bits"`
}

func newSchemeInfo(s *id.Scheme) schemeInfo {
	info := schemeInfo{Name: s.Name(), Alphabet: s.Alphabet(), Base: s.Base(), Unit: s.Unit().String()}
	for _, f := range s.Layout() {
		info.Layout = append(info.Layout, fieldInfo{Name: f.Name, Bits: f.Bits})
	}
	return info
}

type schemesResp struct {
	Default string       `json:"default"`
	Schemes []schemeInfo `json:"schemes"`
}

type generateResp struct {
	Scheme string   `json:"scheme"`
	IDs    []string `json:"ids"`
}

// valueResp pairs an identifier with its integer value in decimal.
type valueResp struct {
	Scheme string `json:"scheme"`
	ID     string `json:"id"`
	Value  string `json:"value"`
}

type readableResp struct {
	TS       int64  `json:"ts"`
	Readable string `json:"readable"`
}

type errorResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
