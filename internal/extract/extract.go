// Package extract narrows a JSON API response to a single JSONPath value
// for CLI output.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Apply evaluates a JSONPath expression against body and renders the
// result as a string. Scalars print bare; arrays and objects re-encode
// as JSON.
func Apply(body []byte, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", fmt.Errorf("empty jsonpath expression")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("extract %s: body is not valid JSON: %w", expr, err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", expr, err)
	}
	if val == nil {
		return "", fmt.Errorf("extract %s: no value found", expr)
	}

	return toString(val)
}

func toString(v any) (string, error) {
	// jsonpath commonly answers a one-element slice for indexed matches.
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return toString(arr[0])
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
