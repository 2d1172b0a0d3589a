package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/seqid/internal/runtime"
)

// GeneralController serves liveness, health and the scheme catalogue.
type GeneralController struct {
	rt *runtime.Runtime
}

func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes mounts /ping, /v1/healthz and /v1/schemes.
func (c *GeneralController) RegisterRoutes(r chi.Router) {
	r.Get("/ping", c.handlePing)
	r.Get("/v1/healthz", c.handleHealth)
	r.Get("/v1/schemes", c.handleSchemes)
}

func (c *GeneralController) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// handleHealth returns 200 {"status":"ok"} when healthy, 503 otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error(), "not_serving")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *GeneralController) handleSchemes(w http.ResponseWriter, _ *http.Request) {
	reg := c.rt.Registry()
	resp := schemesResp{Default: reg.Default().Scheme().Name()}
	for _, name := range reg.Names() {
		iss, err := reg.Lookup(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		resp.Schemes = append(resp.Schemes, newSchemeInfo(iss.Scheme()))
	}
	writeJSON(w, http.StatusOK, resp)
}
