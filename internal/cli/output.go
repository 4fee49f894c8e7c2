package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bisonvert/bv.libclient/internal/extract"
	"github.com/bisonvert/bv.libclient/trips"
)

// printResult renders v according to the chosen format. When a jsonpath
// expression is given it wins over both formats: the result is re-encoded
// as JSON and narrowed to the matched value.
func printResult(w io.Writer, v any, format, jsonPath string) error {
	if jsonPath != "" {
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		s, err := extract.Apply(encoded, jsonPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
		return nil
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "pretty", "":
		printPretty(w, v)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPretty(w io.Writer, v any) {
	switch t := v.(type) {
	case []*trips.Trip:
		if len(t) == 0 {
			fmt.Fprintln(w, "(no trips)")
			return
		}
		for _, tr := range t {
			printTripLine(w, tr)
		}
	case *trips.Trip:
		printTripLine(w, t)
	case *trips.SearchResult:
		if t.Trip != nil {
			fmt.Fprintln(w, "Trip:")
			printTripLine(w, t.Trip)
		}
		fmt.Fprintf(w, "Offers (%d):\n", len(t.Offers))
		for _, tr := range t.Offers {
			printTripLine(w, tr)
		}
		fmt.Fprintf(w, "Demands (%d):\n", len(t.Demands))
		for _, tr := range t.Demands {
			printTripLine(w, tr)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(v)
	}
}

func printTripLine(w io.Writer, t *trips.Trip) {
	owner := ""
	if t.User != nil {
		owner = t.User.Username
	}
	fmt.Fprintf(w, "- [%d] %s  %s %s  type=%s user=%s\n",
		t.ID, t.String(), t.Date.String(), t.Time.String(), t.Type(), owner)
}
