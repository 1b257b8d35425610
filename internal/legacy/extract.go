package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Shape names the response layout a booking list was found in.
type Shape string

const (
	ShapePaginated Shape = "paginated"
	ShapeProperty  Shape = "property"
	ShapeNested    Shape = "nested"
	ShapeArray     Shape = "array"
	ShapeWrapped   Shape = "wrapped"
)

// Pagination is what the driver plugin reports next to its data array.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

type Extraction struct {
	Records    []Record
	Pagination *Pagination
	Shape      Shape
}

var errNoRecords = errors.New("response does not contain booking objects")

// listKeys are tried in order; the first one holding a value wins.
var listKeys = []string{"bookings", "appointments", "data", "results"}

// Extract finds the booking list in a JSON body. The layouts are tried in a
// fixed order: a paginated {"data": [...]} envelope, a generic list property,
// a bare array, and finally a single object wrapped into a list.
func Extract(body []byte) (Extraction, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Extraction{}, fmt.Errorf("decode body: %w", err)
	}

	obj, isObject := doc.(map[string]any)
	if isObject {
		if list, ok := obj["data"].([]any); ok {
			return Extraction{
				Records:    records(list),
				Pagination: paginationOf(obj),
				Shape:      ShapePaginated,
			}, nil
		}
	}

	selected := doc
	if isObject {
		for _, key := range listKeys {
			if v, ok := obj[key]; ok && truthy(v) {
				selected = v
				break
			}
		}
	}

	switch v := selected.(type) {
	case []any:
		shape := ShapeArray
		if isObject {
			shape = ShapeProperty
		}
		return Extraction{Records: records(v), Shape: shape}, nil
	case map[string]any:
		if list, ok := v["bookings"].([]any); ok {
			return Extraction{Records: records(list), Shape: ShapeNested}, nil
		}
		return Extraction{Records: []Record{Record(v)}, Shape: ShapeWrapped}, nil
	}
	return Extraction{}, errNoRecords
}

// FindByID looks for one booking in a single-record response. It accepts a
// {"data": [...]} list, a {"data": {...}} envelope, the booking itself, or a
// bare array.
func FindByID(body []byte, id string) (Record, bool) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}

	switch v := doc.(type) {
	case map[string]any:
		switch data := v["data"].(type) {
		case []any:
			return find(records(data), id)
		case map[string]any:
			if r := Record(data); r.IsBooking() {
				return r, true
			}
		}
		if r := Record(v); r.IsBooking() {
			return r, true
		}
	case []any:
		return find(records(v), id)
	}
	return nil, false
}

func find(list []Record, id string) (Record, bool) {
	for _, r := range list {
		if r.IsBooking() && r.Matches(id) {
			return r, true
		}
	}
	return nil, false
}

func records(list []any) []Record {
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

func paginationOf(obj map[string]any) *Pagination {
	if _, ok := obj["total"]; !ok {
		return nil
	}
	intOf := func(key string) int {
		f, _ := number(obj[key])
		return int(f)
	}
	return &Pagination{
		Total:      intOf("total"),
		Page:       intOf("page"),
		PerPage:    intOf("per_page"),
		TotalPages: intOf("total_pages"),
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	}
	return true
}
