package transcript

import "strings"

// ApplySubstitutions replaces every occurrence of each Find with its Replace,
// one pair at a time, each pair working on the previous pair's output.
// Both sides are trimmed and pairs with an empty Find are skipped.
func ApplySubstitutions(text string, subs []Substitution) string {
	for _, s := range subs {
		find := strings.TrimSpace(s.Find)
		if find == "" {
			continue
		}
		text = strings.ReplaceAll(text, find, strings.TrimSpace(s.Replace))
	}
	return text
}
