package core

import (
	"encoding/json"
	"strings"

	"medassist/pkg"
)

// severityGrades are the only values accepted for the "severity" field.
var severityGrades = map[string]bool{"low": true, "moderate": true, "high": true}

// ParseSeverity splits the model's raw reply into the human-readable
// answer and the structured severity block, if one is present.
//
// The model is instructed to output:
//
//	...normal answer...
//	###JSON###{"severity": "...", ...}
//
// That is a soft contract: the model may violate it, so every failure
// mode degrades to "answer only" and this function never returns an
// error.  When the JSON decodes, each field is read independently; a
// field of unexpected shape is dropped without affecting the others, and
// unknown fields are ignored.
func ParseSeverity(raw string) (string, *pkg.SeverityInfo) {
	idx := strings.Index(raw, JSONMarker)
	if idx == -1 {
		// No marker found: the whole reply is the answer.
		return strings.TrimSpace(raw), nil
	}

	answer := strings.TrimSpace(raw[:idx])
	candidate := raw[idx+len(JSONMarker):]

	// Extract the first {...} block after the marker.
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end <= start {
		return answer, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &fields); err != nil {
		return answer, nil
	}

	return answer, &pkg.SeverityInfo{
		Severity:          gradeField(fields["severity"]),
		RecommendedAction: stringField(fields["recommended_action"]),
		TimeWindow:        stringField(fields["time_window"]),
		RiskNotes:         stringField(fields["risk_notes"]),
	}
}

// stringField returns the value as *string, or nil when it is missing or
// not a string.
func stringField(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// gradeField is stringField restricted to the known severity grades.
func gradeField(v any) *string {
	s, ok := v.(string)
	if !ok || !severityGrades[s] {
		return nil
	}
	return &s
}
