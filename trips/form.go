package trips

import (
	"net/url"
	"strconv"
	"strings"
)

// Form carries the writable trip fields for Add and Edit submissions.
// Unknown fields are rejected by construction: there is no open field set.
type Form struct {
	DepartureCity string
	ArrivalCity   string
	Date          string // YYYY-MM-DD
	Time          string // H:M:S
	Dows          []int
	Regular       *bool
	Alert         *bool
	Comment       string
	CarTypeID     int
	Seats         int
}

func (f Form) fields() map[string]any {
	m := map[string]any{
		"departure_city": f.DepartureCity,
		"arrival_city":   f.ArrivalCity,
		"date":           f.Date,
		"time":           f.Time,
		"comment":        f.Comment,
	}
	if len(f.Dows) > 0 {
		m["dows"] = f.Dows
	}
	if f.Regular != nil {
		m["regular"] = strconv.FormatBool(*f.Regular)
	}
	if f.Alert != nil {
		m["alert"] = strconv.FormatBool(*f.Alert)
	}
	if f.CarTypeID > 0 {
		m["cartype"] = strconv.Itoa(f.CarTypeID)
	}
	if f.Seats > 0 {
		m["seats"] = strconv.Itoa(f.Seats)
	}
	return m
}

// joinDows serializes day-of-week indices as a single "-"-joined token.
func joinDows(dows []int) string {
	parts := make([]string, len(dows))
	for i, d := range dows {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

// encodeFields flattens a field map into a wire form, applying the dows
// join. Other keys pass through unchanged.
func encodeFields(fields map[string]any) url.Values {
	v := url.Values{}
	for key, value := range fields {
		switch t := value.(type) {
		case []int:
			v.Set(key, joinDows(t))
		case []string:
			if key == "dows" {
				v.Set(key, strings.Join(t, "-"))
				continue
			}
			for _, s := range t {
				v.Add(key, s)
			}
		case string:
			v.Set(key, t)
		case bool:
			v.Set(key, strconv.FormatBool(t))
		case int:
			v.Set(key, strconv.Itoa(t))
		default:
			// No other value shapes are produced by Form.
		}
	}
	return v
}

// filterEmptyFields drops fields whose value is an empty string, or a
// single-element sequence holding only an empty string, before submission.
func filterEmptyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		switch t := value.(type) {
		case string:
			if t == "" {
				continue
			}
		case []string:
			if len(t) == 1 && t[0] == "" {
				continue
			}
		}
		out[key] = value
	}
	return out
}
