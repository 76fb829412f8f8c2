package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/wiki-transcript/internal/config"
	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
	"github.com/nguyentantai21042004/wiki-transcript/internal/processor"
	"github.com/nguyentantai21042004/wiki-transcript/internal/server"
	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
	"github.com/nguyentantai21042004/wiki-transcript/internal/summarizer"
	"github.com/nguyentantai21042004/wiki-transcript/internal/watcher"
	"github.com/nguyentantai21042004/wiki-transcript/pkg/executor"
)

const usage = `Usage: transcript [-config FILE] <command> [args]

Commands:
  process FILE...               normalize and summarize transcripts
  watch                         process new .txt files in paths.watch
  serve                         run the HTTP API on server.addr
  hosts list|add NAME|remove NAME
  subs list|add FIND REPLACE|set INDEX FIND REPLACE|remove INDEX
  apikey set KEY
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transcript", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(resolveConfigPath(fs, *configPath))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		return 1
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "process":
		err = app.process(ctx, rest)
	case "watch":
		err = app.watch(ctx)
	case "serve":
		err = app.serve(ctx)
	case "hosts", "subs", "apikey":
		err = runSettingsCommand(ctx, app.registry, app.store, cmd, rest, stdout)
	default:
		fs.Usage()
		return 2
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "%v\n", err)
		fs.Usage()
		return 2
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%s failed: %v", cmd, err)
		return 1
	}
	return 0
}

// resolveConfigPath drops the default config path when the file is absent.
func resolveConfigPath(fs *flag.FlagSet, path string) string {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return ""
		}
	}
	return path
}

type app struct {
	cfg       *config.Config
	log       logger.Logger
	registry  *settings.Registry
	store     settings.Store
	processor processor.Processor
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	store := settings.NewStore(cfg.Paths.Settings, log)
	initial, err := store.Load(ctx, settings.Default())
	if err != nil {
		// Settings problems are not fatal; defaults fill the gaps.
		log.Warn(ctx, "%v", processor.ConfigError(err))
	}
	reg := settings.NewRegistry(initial)

	proc, err := processor.New(cfg, reg, summarizer.NewFactory(cfg.Gemini.Model, cfg.Gemini.Timeout, log), executor.New(), log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       log,
		registry:  reg,
		store:     store,
		processor: proc,
	}, nil
}

func (a *app) process(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: process needs at least one FILE", errUsage)
	}

	var failed int
	for _, f := range files {
		if _, err := a.processor.Process(ctx, f); err != nil {
			a.log.Error(ctx, "Failed to process %s: %v", f, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transcripts failed", failed, len(files))
	}
	return nil
}

func (a *app) watch(ctx context.Context) error {
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Wiki Transcript Watcher")
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	a.log.Info(ctx, "Max Concurrent Processing: %d", a.cfg.Performance.MaxConcurrent)
	a.log.Info(ctx, "Max Concurrent Summaries: %d", a.cfg.Performance.MaxSummaries)
	a.log.Info(ctx, "Attribution: %s", a.cfg.Pipeline.Attribution)

	if err := ensureDirectories(a.cfg); err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		_, err := a.processor.Process(ctx, path)
		return err
	}
	w, err := watcher.New(a.cfg.Paths.Watch, handler, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Watch)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	err = w.Start(ctx)
	a.log.Info(ctx, "Watcher stopped")
	return err
}

func (a *app) serve(ctx context.Context) error {
	if err := ensureDirectories(a.cfg); err != nil {
		return err
	}
	srv := server.New(a.cfg, a.processor, a.registry, a.store, a.log)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		a.log.Info(context.Background(), "Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Watch, cfg.Paths.Output}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
