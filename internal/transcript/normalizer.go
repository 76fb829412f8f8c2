package transcript

import (
	"context"
	"strings"
)

func (n *implNormalizer) Normalize(ctx context.Context, raw string, opts Options) string {
	n.logger.Debug(ctx, "Normalizing transcript: %d hosts, %d substitutions, attribution=%s",
		len(opts.Hosts), len(opts.Substitutions), opts.Attribution)

	text := raw
	for _, p := range Passes(opts) {
		text = p.Apply(text)
		n.logger.Debug(ctx, "Pass %s: %d bytes, %d lines", p.Name, len(text), strings.Count(text, "\n")+1)
	}
	return text
}
