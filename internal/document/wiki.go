package document

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/wiki-transcript/internal/transcript"
)

var (
	reLeadingSpeaker = regexp.MustCompile(`^'''(.+?)''':\s*(.*)$`)
	reInlineSpeaker  = regexp.MustCompile(`'''(.+?)''':\s*`)
)

// Line is one rendered transcript line with wiki markup removed.
type Line struct {
	Speaker string
	Text    string
}

// TranscriptLines parses the processed transcript into plain lines for the
// rich exporters.
func TranscriptLines(body string) []Line {
	var out []Line
	for _, raw := range strings.Split(body, "\n") {
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), transcript.LineBreak))
		if s == "" {
			continue
		}

		var ln Line
		if m := reLeadingSpeaker.FindStringSubmatch(s); m != nil {
			ln.Speaker = m[1]
			s = m[2]
		}
		ln.Text = strings.TrimSpace(reInlineSpeaker.ReplaceAllString(s, "$1: "))
		if ln.Speaker == "" && ln.Text == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}
