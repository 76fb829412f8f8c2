package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

var reLineJoin = regexp.MustCompile(`[ \t]*\r?\n\s*`)

// FormatHost returns the bold speaker marker for host.
func FormatHost(host string) string {
	return "'''" + host + "''':   "
}

// speakerRules holds the patterns compiled from one host snapshot.
type speakerRules struct {
	hosts    []string
	mode     AttributionMode
	opener   *regexp.Regexp // host + ":" + line break that opens a multi-line turn
	inline   *regexp.Regexp // line-opening host + ":" + same-line dialogue (turns mode)
	nextTurn *regexp.Regexp // where a turn's dialogue stops
}

func newSpeakerRules(hosts []string, mode AttributionMode) *speakerRules {
	r := &speakerRules{hosts: hosts, mode: mode}

	alt := hostAlternation(hosts)
	if alt == "" {
		return r
	}

	switch mode {
	case AttributeTurns:
		r.opener = regexp.MustCompile(`(?m)^[ \t]*(` + alt + `):[ \t]*\r?\n\s*`)
		r.inline = regexp.MustCompile(`(?m)^[ \t]*(` + alt + `):[ \t]*([^\s])`)
		r.nextTurn = regexp.MustCompile(`(?m)^[ \t]*(?:'''(?:` + alt + `)''':|(?:` + alt + `):)`)
	default:
		r.opener = regexp.MustCompile(`(` + alt + `):[ \t]*\r?\n\s*`)
		r.nextTurn = regexp.MustCompile(alt)
	}
	return r
}

// hostAlternation joins the quoted host names in priority order.
func hostAlternation(hosts []string) string {
	quoted := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(h))
	}
	return strings.Join(quoted, "|")
}

// attributeHosts rewrites host names into speaker markers. In everywhere
// mode every literal occurrence is rewritten, one host after another.
func (r *speakerRules) attributeHosts(text string) string {
	if r.mode == AttributeTurns {
		if r.inline == nil {
			return text
		}
		return r.inline.ReplaceAllString(text, "'''${1}''':   ${2}")
	}

	for _, h := range r.hosts {
		if h == "" {
			continue
		}
		text = strings.ReplaceAll(text, h, FormatHost(h))
	}
	return text
}

// repairMarkers moves a line-break marker that follows a line break in
// front of a speaker marker to the end of the previous line.
func (r *speakerRules) repairMarkers(text string) string {
	for _, h := range r.hosts {
		if h == "" {
			continue
		}
		m := FormatHost(h)
		text = strings.ReplaceAll(text, "\n"+LineBreak+m, LineBreak+"\n"+m)
	}
	return text
}

// collapseTurns rewrites "Host:\n  line\n  line" into a single marked line.
// Dialogue runs until the next host occurrence or the end of the text.
func (r *speakerRules) collapseTurns(text string) string {
	if r.opener == nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for {
		loc := r.opener.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:loc[0]])
		host := rest[loc[2]:loc[3]]
		body := rest[loc[1]:]

		end := len(body)
		if next := r.nextTurn.FindStringIndex(body); next != nil {
			end = next[0]
		}

		segment := body[:end]
		dialogue := strings.TrimRightFunc(segment, unicode.IsSpace)
		if dialogue == "" {
			b.WriteString(rest[loc[0]:loc[1]])
			rest = body
			continue
		}

		b.WriteString(FormatHost(host))
		b.WriteString(collapseLines(dialogue))

		trailing := segment[len(dialogue):]
		if strings.Contains(trailing, "\n") {
			b.WriteString("\n")
		} else {
			b.WriteString(trailing)
		}
		rest = body[end:]
	}

	return b.String()
}

func collapseLines(s string) string {
	return strings.TrimSpace(reLineJoin.ReplaceAllString(s, " "))
}
