package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool              SARIFTool              `json:"tool"`
	AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
	Results           []SARIFResult          `json:"results"`
}

// SARIFAutomationDetails identifies the run.
type SARIFAutomationDetails struct {
	GUID string `json:"guid"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single violation.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Columns count UTF-16
// code units, the SARIF default.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer

	// newGUID identifies each run; replaced in tests.
	newGUID func() string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts:    opts,
		out:     opts.Writer,
		newGUID: func() string { return uuid.NewString() },
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "swiftlint-go",
				Version:        version,
				InformationURI: "https://github.com/yaklabco/swiftlint-go",
				Rules:          make([]SARIFRule, 0),
			},
		},
		AutomationDetails: SARIFAutomationDetails{GUID: r.newGUID()},
		Results:           make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int)
	eachViolation(result, func(file runner.FileOutcome, i int) {
		v := file.Result.Violations[i]

		index, seen := ruleIndex[v.RuleID]
		if !seen {
			index = len(run.Tool.Driver.Rules)
			ruleIndex[v.RuleID] = index
			rule := SARIFRule{
				ID:               v.RuleID,
				Name:             v.RuleName,
				ShortDescription: SARIFMultiformatText{Text: v.RuleDescription},
				DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(v.Severity)},
			}
			if meta, ok := r.opts.Rules[v.RuleID]; ok {
				rule.Properties = map[string]any{
					"optIn":       meta.OptIn,
					"correctable": meta.Fixable,
					"custom":      meta.Custom,
				}
			}
			if rule.ShortDescription.Text == "" {
				rule.ShortDescription.Text = v.RuleName
			}
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
		}

		run.Results = append(run.Results, SARIFResult{
			RuleID:    v.RuleID,
			RuleIndex: index,
			Level:     severityToSARIFLevel(v.Severity),
			Message:   SARIFMessage{Text: v.Reason},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{
						URI: filepath.ToSlash(r.opts.displayPath(file.Path)),
					},
					Region: SARIFRegion{
						StartLine:   v.Location.Line,
						StartColumn: v.Location.Character,
					},
				},
			}},
		})
	})

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// severityToSARIFLevel converts a violation severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	if severity == config.SeverityError {
		return "error"
	}
	return "warning"
}
