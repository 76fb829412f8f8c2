package transcript

import "strings"

// MarkLines prefixes every non-blank line with LineBreak and drops blank lines.
func MarkLines(text string) string {
	lines := strings.Split(text, "\n")
	marked := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		marked = append(marked, LineBreak+line)
	}
	return strings.Join(marked, "\n")
}

// CleanupMarkers removes the line-break marker that directly follows a
// speaker marker at the end of a line, joining the two lines.
func CleanupMarkers(text string, hosts []string) string {
	for _, h := range hosts {
		if h == "" {
			continue
		}
		m := FormatHost(h)
		text = strings.ReplaceAll(text, m+"\n"+LineBreak, m)
	}
	return text
}
