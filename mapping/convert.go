package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a raw value outside the format a normalizer expects.
// Normalizers never return a silently wrong value instead.
type FormatError struct {
	Format string
	Value  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("value %q does not match format %q", e.Value, e.Format)
}

// Null tokens the API uses interchangeably with JSON null.
func isNullToken(s string) bool {
	return s == "null" || s == "none"
}

// DateToAPI converts a DD/MM/YYYY date into the YYYY-MM-DD form the API
// expects. Null tokens and the empty string yield "".
func DateToAPI(value string) (string, error) {
	if value == "" || isNullToken(value) {
		return "", nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return "", &FormatError{Format: "DD/MM/YYYY", Value: value}
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return "", &FormatError{Format: "DD/MM/YYYY", Value: value}
		}
	}

	return parts[2] + "-" + parts[1] + "-" + parts[0], nil
}

// ParseBool applies the API's loose boolean convention: "true", "True",
// "1" and true map to true, everything else to false.
func ParseBool(value any) bool {
	switch t := value.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "True" || t == "1"
	default:
		return false
	}
}
