package formatter

import (
	"encoding/json"
)

// JSONFormatter outputs StatusReport as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the StatusReport as indented JSON.
func (f *JSONFormatter) Format(report StatusReport) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal status"}`
	}
	return string(data)
}
