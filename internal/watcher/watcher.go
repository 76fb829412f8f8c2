package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/wiki-transcript/internal/document"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

var errStillWriting = errors.New("file still being written")

type implWatcher struct {
	inputDir       string
	handler        EventHandler
	logger         logger.Logger
	watcher        *fsnotify.Watcher
	maxConcurrent  int
	semaphore      chan struct{}
	wg             sync.WaitGroup
	mu             sync.Mutex
	inflight       map[string]bool
	settleInterval time.Duration
	settleTimeout  time.Duration
}

// Start begins monitoring the input directory for new transcript files
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s (files ending in %s are skipped)", strings.Join(transcriptExts, ", "), document.ProcessedSuffix)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTranscriptFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}
			if !w.claim(event.Name) {
				w.logger.Debug(ctx, "Already processing: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New transcript detected: %s", event.Name)

			// Acquire semaphore slot (blocks if max concurrent reached)
			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					defer w.release(filePath)

					if err := w.waitStable(ctx, filePath); err != nil {
						w.logger.Warn(ctx, "Skipping %s: %v", filePath, err)
						return
					}
					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.release(event.Name)
				w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[path] {
		return false
	}
	w.inflight[path] = true
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, path)
}

// waitStable polls the file size with exponential backoff until two
// consecutive reads agree.
func (w *implWatcher) waitStable(ctx context.Context, path string) error {
	last := int64(-1)
	op := func() error {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return backoff.Permanent(err)
			}
			return err
		}
		if info.Size() != last {
			last = info.Size()
			return errStillWriting
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = w.settleInterval
	bo.MaxInterval = 8 * w.settleInterval
	bo.MaxElapsedTime = w.settleTimeout

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("wait for stable file: %w", err)
	}
	return nil
}

var transcriptExts = []string{".txt"}

// isTranscriptFile accepts raw transcripts and skips our own outputs and
// hidden temp files.
func isTranscriptFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	if strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), document.ProcessedSuffix) {
		return false
	}

	for _, format := range transcriptExts {
		if ext == format {
			return true
		}
	}
	return false
}
