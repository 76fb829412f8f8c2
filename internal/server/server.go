package server

import (
	"context"
	"errors"
	"net/http"
)

func (s *implServer) routes() {
	s.echo.GET("/healthz", s.health)

	v1 := s.echo.Group("/v1")
	v1.POST("/render", s.render)
	v1.POST("/process", s.process)

	st := v1.Group("/settings")
	st.GET("", s.getSettings)
	st.POST("/hosts", s.addHost)
	st.DELETE("/hosts/:name", s.removeHost)
	st.POST("/substitutions", s.addSubstitution)
	st.PUT("/substitutions/:index", s.setSubstitution)
	st.DELETE("/substitutions/:index", s.removeSubstitution)
	st.PUT("/api-key", s.setAPIKey)
	st.POST("/save", s.saveSettings)
}

// Start listens on the configured address until Shutdown.
func (s *implServer) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.cfg.Server.Addr)
	if err := s.echo.Start(s.cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *implServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *implServer) Handler() http.Handler {
	return s.echo
}
