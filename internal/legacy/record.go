package legacy

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one booking object exactly as the WordPress site returned it.
type Record map[string]any

// ID returns the record's id, or booking_id when id is absent.
func (r Record) ID() string {
	if id := scalar(r["id"]); id != "" {
		return id
	}
	return scalar(r["booking_id"])
}

func (r Record) Title() string {
	switch t := r["title"].(type) {
	case string:
		return t
	case map[string]any:
		// WordPress REST posts nest the title under "rendered"
		return scalar(t["rendered"])
	}
	return ""
}

// IsBooking reports whether r looks like a booking: it has an id or a
// "Booking <n>" title.
func (r Record) IsBooking() bool {
	return r.ID() != "" || strings.HasPrefix(r.Title(), "Booking ")
}

// Matches reports whether r is the booking with the given id.
func (r Record) Matches(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return false
	}
	if strings.ToLower(scalar(r["id"])) == id || strings.ToLower(scalar(r["booking_id"])) == id {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title()), "booking "+id)
}

func (r Record) Meta() map[string]any {
	if m, ok := r["meta"].(map[string]any); ok {
		return m
	}
	return nil
}

// scalar renders strings, numbers and booleans. Objects, arrays and nulls
// give "".
func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func number(v any) (float64, bool) {
	s := scalar(v)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
