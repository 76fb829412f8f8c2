package transcript

import (
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

type implNormalizer struct {
	logger logger.Logger
}

// New creates a Normalizer that logs each pass at debug level.
func New(log logger.Logger) Normalizer {
	return &implNormalizer{logger: log}
}
