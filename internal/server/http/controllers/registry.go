package controllers

import (
	"github.com/go-chi/chi/v5"

	"github.com/rzbill/seqid/internal/runtime"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general  *GeneralController
	ids      *IDsController
	readable *ReadableController
}

// NewControllerRegistry initializes every controller against rt.
func NewControllerRegistry(rt *runtime.Runtime) *ControllerRegistry {
	return &ControllerRegistry{
		general:  NewGeneralController(rt),
		ids:      NewIDsController(rt),
		readable: NewReadableController(rt),
	}
}

// RegisterAllRoutes mounts every controller on r.
func (c *ControllerRegistry) RegisterAllRoutes(r chi.Router) {
	c.general.RegisterRoutes(r)
	c.ids.RegisterRoutes(r)
	c.readable.RegisterRoutes(r)
}
