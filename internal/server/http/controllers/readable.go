package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/seqid/internal/runtime"
	"github.com/rzbill/seqid/pkg/id"
)

// ReadableController converts between microsecond timestamps and the
// YYYYMMDD_HHMMSSuuuuuu±HH form.
type ReadableController struct {
	rt *runtime.Runtime
}

func NewReadableController(rt *runtime.Runtime) *ReadableController {
	return &ReadableController{rt: rt}
}

func (c *ReadableController) RegisterRoutes(r chi.Router) {
	r.Get("/v1/readable", c.handleFormat)
	r.Get("/v1/readable/parse", c.handleParse)
}

// handleFormat reads ?ts= (µs since epoch) and optional ?tz= (minutes east
// of UTC, default from config).
func (c *ReadableController) handleFormat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ts, err := strconv.ParseInt(q.Get("ts"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ts must be microseconds since the Unix epoch", codeBadRequest)
		return
	}
	tz, err := parseTZ(q.Get("tz"), c.rt.Config().TZOffsetMinutes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
		return
	}
	out, err := id.FormatReadable(ts, tz)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readableResp{TS: ts, Readable: out})
}

func (c *ReadableController) handleParse(w http.ResponseWriter, r *http.Request) {
	s := r.URL.Query().Get("s")
	ts, err := id.FromReadable(s)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readableResp{TS: ts, Readable: s})
}
