package summarizer

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

type implSummarizer struct {
	apiKeys    []string
	mu         sync.Mutex
	currentKey int
	logger     logger.Logger
	model      string
	timeout    time.Duration
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, timeout time.Duration, log logger.Logger) Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &implSummarizer{
		apiKeys: compactKeys(apiKeys),
		logger:  log,
		model:   model,
		timeout: timeout,
	}
}

// NewFactory returns a Factory producing Gemini summarizers.
func NewFactory(model string, timeout time.Duration, log logger.Logger) Factory {
	return func(apiKeys []string) Summarizer {
		return New(apiKeys, model, timeout, log)
	}
}

func compactKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
