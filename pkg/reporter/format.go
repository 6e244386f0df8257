package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names a reporter output style.
type Format string

// The formats adoclint can emit.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// knownFormats drives parsing, validation, and the error message, in the
// order the formats are documented.
var knownFormats = []Format{
	FormatText,
	FormatTable,
	FormatJSON,
	FormatSARIF,
	FormatDiff,
	FormatSummary,
}

// ParseFormat parses a format name. The empty string selects text output.
func ParseFormat(raw string) (Format, error) {
	if raw == "" {
		return FormatText, nil
	}

	fv := Format(raw)
	if fv.IsValid() {
		return fv, nil
	}

	names := make([]string, len(knownFormats))
	for i, known := range knownFormats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s",
		raw, strings.Join(names, ", "))
}

// String returns the format's wire name.
func (fm Format) String() string {
	return string(fm)
}

// IsValid reports whether the format is one the reporter can emit.
func (fm Format) IsValid() bool {
	return slices.Contains(knownFormats, fm)
}
