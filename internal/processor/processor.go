package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
	"github.com/nguyentantai21042004/wiki-transcript/pkg/atomicfile"
)

// Process orchestrates the entire transcript pipeline for one file
func (p *implProcessor) Process(ctx context.Context, path string) (Result, error) {
	startTime := time.Now()
	runID := logger.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logger.WithRunID(ctx, runID)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript processing: %s", path)
	p.logger.Info(ctx, "========================================")

	// Step 1: Read the raw transcript
	raw, err := readTranscript(path)
	if err != nil {
		return Result{}, runError(StageRead, ErrInput, err)
	}

	// Step 2-4: Normalize, summarize, assemble
	doc, err := p.render(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	// Step 5: Write the wiki document in one piece
	outputPath := document.OutputPath(path, p.cfg.Paths.Output)
	p.logger.Debug(ctx, "Stage: %s", StageWrite)
	if err := writeOutput(outputPath, doc.Render()); err != nil {
		return Result{}, runError(StageWrite, ErrOutput, err)
	}

	// Step 6: Optional exports and opening the result
	exports := p.export(ctx, doc, outputPath)
	if p.cfg.Export.Open {
		if err := p.executor.Open(ctx, outputPath); err != nil {
			p.logger.Warn(ctx, "Failed to open output: %v", err)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output document: %s", outputPath)
	for _, e := range exports {
		p.logger.Info(ctx, "Export: %s", e)
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return Result{
		RunID:    runID,
		Input:    path,
		Output:   outputPath,
		Exports:  exports,
		Document: doc,
		Duration: duration,
	}, nil
}

// Render runs the pipeline on in-memory text.
func (p *implProcessor) Render(ctx context.Context, raw string) (document.Document, error) {
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}
	text, err := decodeTranscript([]byte(raw))
	if err != nil {
		return document.Document{}, runError(StageRead, ErrInput, err)
	}
	return p.render(ctx, text)
}

func (p *implProcessor) render(ctx context.Context, raw string) (document.Document, error) {
	snap := p.settings.Snapshot()

	p.logger.Debug(ctx, "Stage: %s (%d hosts, %d substitutions, %s mode)", StageNormalize, len(snap.Hosts), len(snap.FindReplace), p.mode)
	processed := p.normalizer.Normalize(ctx, raw, snap.Options(p.mode))

	p.logger.Debug(ctx, "Stage: %s", StageSummarize)
	short, detailed, err := p.summarize(ctx, p.apiKeys(snap.APIKey), processed)
	if err != nil {
		return document.Document{}, runError(StageSummarize, ErrSummarization, err)
	}

	p.logger.Debug(ctx, "Stage: %s", StageAssemble)
	return document.Assemble(short, detailed, processed), nil
}

// apiKeys puts the user's settings key ahead of keys from the config file.
func (p *implProcessor) apiKeys(settingsKey string) []string {
	keys := make([]string, 0, len(p.cfg.Gemini.APIKeys)+1)
	if settingsKey != "" {
		keys = append(keys, settingsKey)
	}
	for _, k := range p.cfg.Gemini.APIKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := atomicfile.Write(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
