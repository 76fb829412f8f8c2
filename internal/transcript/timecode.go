package transcript

import "regexp"

var reTimecode = regexp.MustCompile(`[0-9]{2}:[0-9]{2}:[0-9]{2}\.[0-9]{2}|[0-9]{2}:[0-9]{2}\.[0-9]{2}`)

// StripTimecodes removes HH:MM:SS.ss and MM:SS.ss markers. Removing a marker
// can join the digits around it into a new one, so it repeats until none is left.
func StripTimecodes(text string) string {
	for reTimecode.MatchString(text) {
		text = reTimecode.ReplaceAllString(text, "")
	}
	return text
}
