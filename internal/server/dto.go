package server

import (
	"time"

	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
	"github.com/nguyentantai21042004/wiki-transcript/internal/processor"
	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
)

type renderRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

type processRequest struct {
	Path string `json:"path" validate:"required"`
}

type hostRequest struct {
	Name string `json:"name" validate:"required"`
}

type substitutionRequest struct {
	Find    string `json:"find" validate:"required"`
	Replace string `json:"replace"`
}

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

type documentResponse struct {
	TLDR       string `json:"tldr"`
	Summary    string `json:"summary"`
	Transcript string `json:"transcript"`
	Document   string `json:"document"`
}

type processResponse struct {
	RunID      string           `json:"run_id"`
	Input      string           `json:"input"`
	Output     string           `json:"output"`
	Exports    []string         `json:"exports,omitempty"`
	DurationMS int64            `json:"duration_ms"`
	Document   documentResponse `json:"document"`
}

type settingsResponse struct {
	Hosts         []string        `json:"hosts"`
	APIKeySet     bool            `json:"api_key_set"`
	APIKey        string          `json:"api_key,omitempty"`
	Substitutions []settings.Pair `json:"find_replace"`
	Path          string          `json:"path"`
}

type substitutionResponse struct {
	Index         int             `json:"index"`
	Substitutions []settings.Pair `json:"find_replace"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

func toDocumentResponse(d document.Document) documentResponse {
	return documentResponse{
		TLDR:       d.Short,
		Summary:    d.Detailed,
		Transcript: d.Transcript,
		Document:   d.Render(),
	}
}

func toProcessResponse(r processor.Result) processResponse {
	return processResponse{
		RunID:      r.RunID,
		Input:      r.Input,
		Output:     r.Output,
		Exports:    r.Exports,
		DurationMS: r.Duration.Round(time.Millisecond).Milliseconds(),
		Document:   toDocumentResponse(r.Document),
	}
}

func toSettingsResponse(s settings.Settings, path string) settingsResponse {
	red := s.Redacted()
	return settingsResponse{
		Hosts:         red.Hosts,
		APIKeySet:     s.APIKey != "",
		APIKey:        red.APIKey,
		Substitutions: red.FindReplace,
		Path:          path,
	}
}
