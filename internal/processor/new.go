package processor

import (
	"github.com/nguyentantai21042004/wiki-transcript/internal/config"
	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
	"github.com/nguyentantai21042004/wiki-transcript/internal/summarizer"
	"github.com/nguyentantai21042004/wiki-transcript/internal/transcript"
	"github.com/nguyentantai21042004/wiki-transcript/pkg/executor"
)

type implProcessor struct {
	cfg           *config.Config
	mode          transcript.AttributionMode
	settings      *settings.Registry
	normalizer    transcript.Normalizer
	newSummarizer summarizer.Factory
	exporters     []document.Exporter
	executor      executor.Executor
	summaries     *semaphore
	logger        logger.Logger
}

// New creates a new Processor instance. Runs read hosts, substitutions and the
// API key from a snapshot of reg taken when the run starts.
func New(cfg *config.Config, reg *settings.Registry, newSummarizer summarizer.Factory, exec executor.Executor, log logger.Logger) (Processor, error) {
	mode, err := transcript.ParseAttributionMode(cfg.Pipeline.Attribution)
	if err != nil {
		return nil, ConfigError(err)
	}

	var exporters []document.Exporter
	if cfg.Export.DOCX {
		exporters = append(exporters, document.NewDOCX())
	}
	if cfg.Export.PDF {
		exporters = append(exporters, document.NewPDF())
	}

	return &implProcessor{
		cfg:           cfg,
		mode:          mode,
		settings:      reg,
		normalizer:    transcript.New(log),
		newSummarizer: newSummarizer,
		exporters:     exporters,
		executor:      exec,
		summaries:     newSemaphore(cfg.Performance.MaxSummaries),
		logger:        log,
	}, nil
}
