package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type jsonComparison struct {
	*ComparisonSet
	Best string `json:"best"`
}

// Format generates JSON output for comparison results, naming the winner
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	payload := jsonComparison{ComparisonSet: compSet}
	if best := compSet.Best(); best != nil {
		payload.Best = best.Name
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
