package formats

import (
	"encoding/json"
	"fmt"

	"typeonly/internal/core/app"
	"typeonly/internal/engine/policy"
	"typeonly/internal/shared/util"
	"typeonly/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
	toolName     = "typeonly"
)

// sarifRuleIDs maps each message ID to its stable SARIF rule.
var sarifRuleIDs = map[policy.MessageID]string{
	policy.MessageExportTypes: "TYPEONLY001",
	policy.MessageImportTypes: "TYPEONLY002",
	policy.MessageNoEnums:     "TYPEONLY003",
	policy.MessageNoNonTypes:  "TYPEONLY004",
}

var sarifRuleNames = map[policy.MessageID]string{
	policy.MessageExportTypes: "TypeOnlyExports",
	policy.MessageImportTypes: "TypeOnlyImports",
	policy.MessageNoEnums:     "NoEnums",
	policy.MessageNoNonTypes:  "NoNonTypeStatements",
}

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
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
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from a run. All file URIs
// are made relative to projectRoot.
func GenerateSARIF(projectRoot string, result app.RunResult, banEnums bool) ([]byte, error) {
	results := make([]sarifResult, 0, result.ViolationCount())
	for _, d := range result.Diagnostics() {
		ruleID, ok := sarifRuleIDs[d.MessageID]
		if !ok {
			return nil, fmt.Errorf("no SARIF rule for message %q", d.MessageID)
		}
		loc := sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{
					URI:       util.RelativeSlashPath(projectRoot, d.File),
					URIBaseID: "%SRCROOT%",
				},
			},
		}
		if d.Span.StartLine > 0 {
			loc.PhysicalLocation.Region = &sarifRegion{
				StartLine:   d.Span.StartLine,
				StartColumn: d.Span.StartColumn,
				EndLine:     d.Span.EndLine,
				EndColumn:   d.Span.EndColumn,
			}
		}
		results = append(results, sarifResult{
			RuleID:    ruleID,
			Level:     "error",
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{loc},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    toolName,
						Version: version.Version,
						Rules:   buildSARIFRules(banEnums),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules lists every rule of the message catalog. Descriptions
// use the templates with the placeholders of the active configuration.
func buildSARIFRules(banEnums bool) []sarifRule {
	ids := policy.MessageIDs()
	rules := make([]sarifRule, 0, len(ids))
	data := map[string]string{
		"allowed": policy.AllowedPhrase(banEnums),
		"type":    "non-type statement",
	}
	for _, id := range ids {
		rules = append(rules, sarifRule{
			ID:               sarifRuleIDs[id],
			Name:             sarifRuleNames[id],
			ShortDescription: sarifMessage{Text: policy.FormatMessage(id, data)},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	return rules
}
