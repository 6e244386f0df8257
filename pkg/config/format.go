package config

// FormatRuleID renders a rule identifier in the requested format, falling
// back to the bare ID (e.g. "AD101") when no name is known.
func FormatRuleID(format RuleFormat, id, name string) string {
	switch {
	case name == "" || format == RuleFormatID:
		return id
	case format == RuleFormatCombined:
		return id + "/" + name
	}
	return name
}
