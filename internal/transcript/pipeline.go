package transcript

// Pass names, in execution order.
const (
	PassStripTimecodes = "strip_timecodes"
	PassSubstitute     = "substitute"
	PassAttributeHosts = "attribute_hosts"
	PassRepairMarkers  = "repair_markers"
	PassCollapseTurns  = "collapse_turns"
	PassMarkLines      = "mark_lines"
	PassCleanupMarkers = "cleanup_markers"
)

// Passes returns the normalization passes for opts in the order they must run.
// The speaker passes depend on each other's intermediate output, so the
// order is fixed.
func Passes(opts Options) []Pass {
	hosts := append([]string(nil), opts.Hosts...)
	subs := append([]Substitution(nil), opts.Substitutions...)
	rules := newSpeakerRules(hosts, opts.Attribution)

	return []Pass{
		{Name: PassStripTimecodes, Apply: StripTimecodes},
		{Name: PassSubstitute, Apply: func(s string) string { return ApplySubstitutions(s, subs) }},
		{Name: PassAttributeHosts, Apply: rules.attributeHosts},
		{Name: PassRepairMarkers, Apply: rules.repairMarkers},
		{Name: PassCollapseTurns, Apply: rules.collapseTurns},
		{Name: PassMarkLines, Apply: MarkLines},
		{Name: PassCleanupMarkers, Apply: func(s string) string { return CleanupMarkers(s, hosts) }},
	}
}

// Normalize runs every pass over raw and returns the processed transcript.
func Normalize(raw string, opts Options) string {
	text := raw
	for _, p := range Passes(opts) {
		text = p.Apply(text)
	}
	return text
}
