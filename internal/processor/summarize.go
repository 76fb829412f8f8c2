package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/wiki-transcript/internal/summarizer"
	"golang.org/x/sync/errgroup"
)

// summarize requests both summaries concurrently. The first failure cancels
// the other request.
func (p *implProcessor) summarize(ctx context.Context, keys []string, text string) (string, string, error) {
	if len(keys) == 0 {
		return "", "", summarizer.ErrNoCredential
	}
	sum := p.newSummarizer(keys)

	var short, detailed string
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := p.summarizeOne(gctx, sum, text, summarizer.ModeShort)
		short = s
		return err
	})
	g.Go(func() error {
		s, err := p.summarizeOne(gctx, sum, text, summarizer.ModeDetailed)
		detailed = s
		return err
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return short, detailed, nil
}

func (p *implProcessor) summarizeOne(ctx context.Context, sum summarizer.Summarizer, text string, mode summarizer.Mode) (string, error) {
	if err := p.summaries.acquire(ctx); err != nil {
		return "", fmt.Errorf("wait for %s summary slot: %w", mode, err)
	}
	defer p.summaries.release()

	out, err := sum.Summarize(ctx, text, mode)
	if err != nil {
		return "", err
	}
	return out, nil
}
