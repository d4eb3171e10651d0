package public

import "github.com/fidelio-loyalty/internal/provider"

// Handler serves the diner-facing API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
