package report

import (
	"encoding/json"
	"io"

	"github.com/corelint/corelint/internal/types"
)

type sarif struct {
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
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// WriteSARIF writes violations as SARIF 2.1.0 for code-scanning uploads.
// Every policy violation maps to level "error": there is no severity ladder,
// a violation either fails the build or does not exist.
func WriteSARIF(w io.Writer, toolVersion string, vs []types.Violation) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "corelint", Version: toolVersion}},
	}
	for _, v := range vs {
		run.Results = append(run.Results, sarifResult{
			RuleID:  v.RuleID,
			Level:   "error",
			Message: sarifMessage{Text: v.Message},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: v.Path},
					Region:           sarifRegion{StartLine: v.Line},
				},
			}},
		})
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
