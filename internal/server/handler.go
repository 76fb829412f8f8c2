package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

func (s *implServer) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// requestContext carries the request ID into pipeline logs as the run ID.
func requestContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		ctx = logger.WithRunID(ctx, id)
	}
	return ctx
}

// render handles POST /v1/render
func (s *implServer) render(c echo.Context) error {
	var req renderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation_failed", err)
	}

	doc, err := s.processor.Render(requestContext(c), req.Transcript)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// process handles POST /v1/process. The path is resolved inside the watch directory.
func (s *implServer) process(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation_failed", err)
	}

	path, err := resolveInside(s.cfg.Paths.Watch, req.Path)
	if err != nil {
		return respondError(c, err)
	}

	res, err := s.processor.Process(requestContext(c), path)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProcessResponse(res))
}

func resolveInside(root, name string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve watch directory: %w", err)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	path = filepath.Clean(path)

	realRoot, err := evalExisting(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolve watch directory: %w", err)
	}
	realPath, err := evalExisting(path)
	if errors.Is(err, errDanglingLink) {
		return "", fmt.Errorf("%s: %w", name, errOutsideWatchDir)
	}
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", name, errOutsideWatchDir)
	}
	return path, nil
}

// evalExisting follows symlinks in the longest existing prefix of path and
// appends the missing tail unchanged.
func evalExisting(path string) (string, error) {
	tail := ""
	for p := path; ; {
		real, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(real, tail), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if _, lerr := os.Lstat(p); lerr == nil {
			return "", fmt.Errorf("%s: %w", p, errDanglingLink)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path, nil
		}
		tail = filepath.Join(filepath.Base(p), tail)
		p = parent
	}
}

// getSettings handles GET /v1/settings
func (s *implServer) getSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, toSettingsResponse(s.settings.Snapshot(), s.store.Path()))
}

// addHost handles POST /v1/settings/hosts
func (s *implServer) addHost(c echo.Context) error {
	var req hostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation_failed", err)
	}

	if err := s.settings.AddHost(req.Name); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string][]string{"hosts": s.settings.Hosts()})
}

// removeHost handles DELETE /v1/settings/hosts/:name
func (s *implServer) removeHost(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := s.settings.RemoveHost(name); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"hosts": s.settings.Hosts()})
}

// addSubstitution handles POST /v1/settings/substitutions
func (s *implServer) addSubstitution(c echo.Context) error {
	var req substitutionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation_failed", err)
	}

	idx := s.settings.AddSubstitution(req.Find, req.Replace)
	return c.JSON(http.StatusCreated, substitutionResponse{Index: idx, Substitutions: s.settings.Substitutions()})
}

// setSubstitution handles PUT /v1/settings/substitutions/:index
func (s *implServer) setSubstitution(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return badRequest(c, "invalid_index", err)
	}

	var req substitutionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation_failed", err)
	}

	if err := s.settings.SetSubstitution(idx, req.Find, req.Replace); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, substitutionResponse{Index: idx, Substitutions: s.settings.Substitutions()})
}

// removeSubstitution handles DELETE /v1/settings/substitutions/:index
func (s *implServer) removeSubstitution(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return badRequest(c, "invalid_index", err)
	}
	if err := s.settings.RemoveSubstitution(idx); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, substitutionResponse{Index: idx, Substitutions: s.settings.Substitutions()})
}

// setAPIKey handles PUT /v1/settings/api-key. An empty key clears it.
func (s *implServer) setAPIKey(c echo.Context) error {
	var req apiKeyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", err)
	}
	s.settings.SetAPIKey(req.APIKey)
	return c.NoContent(http.StatusNoContent)
}

// saveSettings handles POST /v1/settings/save
func (s *implServer) saveSettings(c echo.Context) error {
	snap := s.settings.Snapshot()
	if err := s.store.Save(requestContext(c), snap); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSettingsResponse(snap, s.store.Path()))
}
