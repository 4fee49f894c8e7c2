package mapping

import (
	"encoding/json"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// nullableString extracts the string payload of a JSON token, reporting
// null for JSON null and the API's textual null tokens.
func nullableString(raw []byte, format string) (s string, null bool, err error) {
	if string(raw) == "null" {
		return "", true, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, &FormatError{Format: format, Value: string(raw)}
	}
	if isNullToken(s) {
		return "", true, nil
	}
	return s, false, nil
}

// Date is a calendar date field in the API's YYYY-MM-DD format. The zero
// value (Valid == false) represents "no value".
type Date struct {
	Time  time.Time
	Valid bool
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	s, null, err := nullableString(raw, dateLayout)
	if err != nil || null {
		*d = Date{}
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return &FormatError{Format: dateLayout, Value: s}
	}
	*d = Date{Time: t, Valid: true}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// TimeOfDay is a wall-clock time field in H:M:S format.
type TimeOfDay struct {
	Hour, Minute, Second int
	Valid                bool
}

func (t *TimeOfDay) UnmarshalJSON(raw []byte) error {
	s, null, err := nullableString(raw, timeLayout)
	if err != nil || null {
		*t = TimeOfDay{}
		return err
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return &FormatError{Format: timeLayout, Value: s}
	}
	*t = TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second(), Valid: true}
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	return time.Date(0, 1, 1, t.Hour, t.Minute, t.Second, 0, time.UTC).Format(timeLayout)
}

// DateTime is a timestamp field in YYYY-MM-DD H:M:S format.
type DateTime struct {
	Time  time.Time
	Valid bool
}

func (d *DateTime) UnmarshalJSON(raw []byte) error {
	s, null, err := nullableString(raw, dateTimeLayout)
	if err != nil || null {
		*d = DateTime{}
		return err
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return &FormatError{Format: dateTimeLayout, Value: s}
	}
	*d = DateTime{Time: t, Valid: true}
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateTimeLayout))
}

func (d DateTime) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateTimeLayout)
}

// LooseBool decodes the API's mixed boolean encodings: JSON true, "true",
// "True" and "1" are true; anything else, null included, is false.
type LooseBool bool

func (b *LooseBool) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		*b = false
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		*b = false
		return nil
	}
	*b = LooseBool(ParseBool(v))
	return nil
}

func (b LooseBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Bool unwraps the primitive value.
func (b LooseBool) Bool() bool { return bool(b) }
