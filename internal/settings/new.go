package settings

import (
	"sync"

	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

type implStore struct {
	path   string
	logger logger.Logger

	mu      sync.Mutex
	damaged bool // last Load could not read every field
}

// NewStore creates a file-backed Store. Files ending in .json are written as
// JSON, anything else as YAML. Saving over a file that did not load cleanly
// first copies it to <path>.bak.
func NewStore(path string, log logger.Logger) Store {
	return &implStore{
		path:   path,
		logger: log,
	}
}
