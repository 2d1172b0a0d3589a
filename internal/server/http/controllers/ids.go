package controllers

import (
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/seqid/internal/runtime"
	"github.com/rzbill/seqid/pkg/id"
)

// maxGenerateCount caps one generate call.
const maxGenerateCount = 1000

// IDsController exposes generate, encode, decode and describe per scheme.
type IDsController struct {
	rt *runtime.Runtime
}

func NewIDsController(rt *runtime.Runtime) *IDsController {
	return &IDsController{rt: rt}
}

// RegisterRoutes mounts the /v1/ids/{scheme} routes.
func (c *IDsController) RegisterRoutes(r chi.Router) {
	r.Route("/v1/ids/{scheme}", func(r chi.Router) {
		r.Post("/generate", c.handleGenerate)
		r.Get("/encode", c.handleEncode)
		r.Get("/decode/{id}", c.handleDecode)
		r.Get("/describe/{id}", c.handleDescribe)
	})
}

func (c *IDsController) issuer(w http.ResponseWriter, r *http.Request) (*id.Issuer, bool) {
	iss, err := c.rt.Registry().Lookup(chi.URLParam(r, "scheme"))
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return iss, true
}

// handleGenerate issues ?count= identifiers (default 1, at most 1000).
func (c *IDsController) handleGenerate(w http.ResponseWriter, r *http.Request) {
	iss, ok := c.issuer(w, r)
	if !ok {
		return
	}
	count, err := parseCount(r.URL.Query().Get("count"), maxGenerateCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
		return
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = iss.Generate()
	}
	writeJSON(w, http.StatusOK, generateResp{Scheme: iss.Scheme().Name(), IDs: ids})
}

// handleEncode renders the decimal ?value= in the scheme alphabet.
func (c *IDsController) handleEncode(w http.ResponseWriter, r *http.Request) {
	iss, ok := c.issuer(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("value")
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		writeError(w, http.StatusBadRequest, "value must be a non-negative decimal integer", codeBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, valueResp{Scheme: iss.Scheme().Name(), ID: iss.Encode(v), Value: v.String()})
}

func (c *IDsController) handleDecode(w http.ResponseWriter, r *http.Request) {
	iss, ok := c.issuer(w, r)
	if !ok {
		return
	}
	s := chi.URLParam(r, "id")
	v, err := iss.Decode(s)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResp{Scheme: iss.Scheme().Name(), ID: s, Value: v.String()})
}

// handleDescribe answers 200 for any identifier; invalid ones come back
// with valid=false and the reason. ?tz= overrides the configured offset.
func (c *IDsController) handleDescribe(w http.ResponseWriter, r *http.Request) {
	iss, ok := c.issuer(w, r)
	if !ok {
		return
	}
	tz, err := parseTZ(r.URL.Query().Get("tz"), iss.OffsetMinutes())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, iss.Scheme().Describe(chi.URLParam(r, "id"), tz))
}
