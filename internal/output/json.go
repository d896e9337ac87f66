package output

import (
	"encoding/json"
)

// JSONFormatter renders the full result structure with its kind and title.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonEnvelope struct {
	Kind   string      `json:"kind"`
	Title  string      `json:"title"`
	Result interface{} `json:"result"`
	Notes  []string    `json:"notes,omitempty"`
}

func (j JSONFormatter) Format(res *Result) ([]byte, error) {
	env := jsonEnvelope{
		Kind:   string(res.Kind),
		Title:  res.Kind.Title(),
		Result: res.Report,
		Notes:  res.Notes(),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
