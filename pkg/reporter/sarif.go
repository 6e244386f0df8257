package reporter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

// SARIF 2.1.0 object model, cut down to the fields adoclint emits. The json
// tags are fixed by the schema; the Go names are not.
type sarifLog struct {
	SchemaURI string     `json:"$schema"`
	Version   string     `json:"version"`
	Runs      []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	InfoURI string      `json:"informationUri"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription sarifText        `json:"shortDescription,omitempty"`
	DefaultConfig    *sarifRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

// sarifText is the one-field text object the schema uses for messages,
// descriptions, and inserted content alike.
type sarifText struct {
	Content string `json:"text"`
}

type sarifRuleConfig struct{ Level string `json:"level"` }

type sarifResult struct {
	RuleID  string          `json:"ruleId"`
	Level   string          `json:"level"`
	Message sarifText       `json:"message"`
	Locs    []sarifLocation `json:"locations"`
	Fixes   []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	Path string `json:"uri"`
}

type sarifRegion struct {
	Line      int `json:"startLine"`
	Column    int `json:"startColumn,omitempty"`
	EndLine   int `json:"endLine,omitempty"`
	EndColumn int `json:"endColumn,omitempty"`
}

type sarifFix struct {
	Description     sarifText     `json:"description"`
	ArtifactChanges []sarifChange `json:"artifactChanges"`
}

type sarifChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion `json:"deletedRegion"`
	InsertedContent *sarifText  `json:"insertedContent,omitempty"`
}

// SARIFReporter formats results as a SARIF 2.1.0 log for code-scanning
// integrations.
type SARIFReporter struct {
	enc *json.Encoder
}

// NewSARIFReporter wires a SARIF encoder to opts.Writer.
func NewSARIFReporter(opts Options) *SARIFReporter {
	enc := json.NewEncoder(opts.Writer)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return &SARIFReporter{enc: enc}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, res *runner.Result) (int, error) {
	doc := buildSARIFLog(res)
	if err := r.enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF log: %w", err)
	}
	return len(doc.Runs[0].Results), nil
}

func buildSARIFLog(res *runner.Result) *sarifLog {
	// Rules and Results must serialize as [] rather than null.
	run := sarifRun{
		Tool: sarifTool{
			Driver: sarifDriver{
				Name:    "adoclint",
				Version: "0.1.0",
				InfoURI: "https://github.com/yaklabco/adoclint",
				Rules:   []sarifRule{},
			},
		},
		Results: []sarifResult{},
	}

	if res != nil {
		seen := make(map[string]bool)
		for _, file := range res.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			for _, diag := range file.Result.Diagnostics {
				if !seen[diag.RuleID] {
					seen[diag.RuleID] = true
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, ruleDescriptor(diag))
				}
				run.Results = append(run.Results, resultEntry(diag))
			}
		}
	}

	return &sarifLog{
		SchemaURI: sarifSchemaURI,
		Version:   sarifVersion,
		Runs:      []sarifRun{run},
	}
}

// ruleDescriptor builds the driver rule entry from the first diagnostic
// seen for a rule ID.
func ruleDescriptor(diag lint.Diagnostic) sarifRule {
	return sarifRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: sarifText{Content: diag.Message},
		DefaultConfig:    &sarifRuleConfig{Level: sarifLevel(diag.Severity)},
	}
}

func resultEntry(diag lint.Diagnostic) sarifResult {
	return sarifResult{
		RuleID:  diag.RuleID,
		Level:   sarifLevel(diag.Severity),
		Message: sarifText{Content: diag.Message},
		Locs: []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifact{Path: diag.FilePath},
				Region: sarifRegion{
					Line:      diag.StartLine,
					Column:    diag.StartColumn,
					EndLine:   diag.EndLine,
					EndColumn: diag.EndColumn,
				},
			},
		}},
		Fixes: fixEntries(diag),
	}
}

// fixEntries maps fix edits to SARIF fixes. Edits are byte-offset based, so
// the deleted region carries only the start line.
func fixEntries(diag lint.Diagnostic) []sarifFix {
	if len(diag.FixEdits) == 0 || diag.Suggestion == "" {
		return nil
	}

	changes := make([]sarifChange, 0, len(diag.FixEdits))
	for _, edit := range diag.FixEdits {
		changes = append(changes, sarifChange{
			ArtifactLocation: sarifArtifact{Path: diag.FilePath},
			Replacements: []sarifReplacement{{
				DeletedRegion:   sarifRegion{Line: diag.StartLine},
				InsertedContent: &sarifText{Content: edit.NewText},
			}},
		})
	}

	return []sarifFix{{
		Description:     sarifText{Content: diag.Suggestion},
		ArtifactChanges: changes,
	}}
}

// sarifLevels maps adoclint severities onto SARIF levels. Info becomes
// "note"; anything unrecognized is reported as a warning.
var sarifLevels = map[config.Severity]string{
	config.SeverityError:   "error",
	config.SeverityWarning: "warning",
	config.SeverityInfo:    "note",
}

func sarifLevel(severity config.Severity) string {
	return cmp.Or(sarifLevels[severity], "warning")
}
