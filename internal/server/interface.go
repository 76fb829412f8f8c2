package server

import (
	"context"
	"net/http"
)

// Server exposes the pipeline and the settings registry over HTTP.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
	Handler() http.Handler
}
