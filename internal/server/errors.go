package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nguyentantai21042004/wiki-transcript/internal/processor"
	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
	"github.com/nguyentantai21042004/wiki-transcript/internal/summarizer"
)

var errOutsideWatchDir = errors.New("path is outside the watch directory")

var errDanglingLink = errors.New("symlink target does not exist")

// statusFor maps domain errors to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, summarizer.ErrNoCredential):
		return http.StatusPreconditionFailed, "no_api_key"
	case errors.Is(err, processor.ErrInput), errors.Is(err, errOutsideWatchDir):
		return http.StatusUnprocessableEntity, "invalid_input"
	case errors.Is(err, processor.ErrSummarization):
		return http.StatusBadGateway, "summarization_failed"
	case errors.Is(err, processor.ErrOutput):
		return http.StatusInternalServerError, "output_failed"
	case errors.Is(err, processor.ErrConfig):
		return http.StatusInternalServerError, "config_error"
	case errors.Is(err, settings.ErrEmptyHost):
		return http.StatusBadRequest, "empty_host"
	case errors.Is(err, settings.ErrDuplicateHost):
		return http.StatusConflict, "duplicate_host"
	case errors.Is(err, settings.ErrHostNotFound):
		return http.StatusNotFound, "host_not_found"
	case errors.Is(err, settings.ErrIndexOutOfRange):
		return http.StatusNotFound, "substitution_not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondError(c echo.Context, err error) error {
	status, code := statusFor(err)
	resp := errorResponse{Error: code, Message: err.Error()}

	var runErr *processor.RunError
	if errors.As(err, &runErr) {
		resp.Stage = string(runErr.Stage)
	}
	return c.JSON(status, resp)
}

func badRequest(c echo.Context, code string, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: code, Message: err.Error()})
}
