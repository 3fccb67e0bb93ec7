package rentalapi

import "encoding/json"

// Result wraps a decoded API response. The API is inconsistent about its
// envelope: some endpoints return a bare list, some wrap it under "data",
// some page it under "data.items" or "data.list". Result hides that.
type Result struct {
	value any
}

// NewResult wraps an already decoded payload.
func NewResult(value any) Result {
	return Result{value: value}
}

// ErrorMessage returns the response-level error string, or "" when the
// response carries none.
func (r Result) ErrorMessage() string {
	obj, ok := r.value.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := obj["error"].(string)
	return msg
}

// Data unwraps the "data" envelope when present, otherwise returns the raw
// value.
func (r Result) Data() any {
	if obj, ok := r.value.(map[string]any); ok {
		if inner, exists := obj["data"]; exists {
			return inner
		}
	}
	return r.value
}

// Items extracts the listing slice and total count from any of the known
// envelope shapes. A nil slice means the response is not list-bearing.
func (r Result) Items() ([]any, int) {
	if items, ok := r.value.([]any); ok {
		return items, len(items)
	}

	data := r.Data()
	if items, ok := data.([]any); ok {
		return items, len(items)
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, 0
	}

	var items []any
	for _, key := range []string{"items", "list"} {
		if inner, exists := obj[key].([]any); exists {
			items = inner
			break
		}
	}
	if items == nil {
		return nil, 0
	}

	total := len(items)
	if v, exists := obj["total"].(float64); exists {
		total = int(v)
	}
	return items, total
}

// Object returns the response payload as a single object, unwrapping the
// "data" envelope when present.
func (r Result) Object() (map[string]any, bool) {
	obj, ok := r.Data().(map[string]any)
	return obj, ok
}

// ID extracts an identifier from the payload: a bare or wrapped object's
// "id", or the "id" of the first element of a wrapped list.
func (r Result) ID() (string, bool) {
	fromObj := func(obj map[string]any) (string, bool) {
		switch id := obj["id"].(type) {
		case string:
			return id, id != ""
		case float64:
			return jsonNumber(id), true
		}
		return "", false
	}

	if obj, ok := r.Data().(map[string]any); ok {
		if id, ok := fromObj(obj); ok {
			return id, true
		}
	}
	if items, _ := r.Items(); len(items) > 0 {
		if obj, ok := items[0].(map[string]any); ok {
			return fromObj(obj)
		}
	}
	return "", false
}

// JSON renders the raw payload as indented JSON.
func (r Result) JSON() (string, error) {
	out, err := json.MarshalIndent(r.value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func jsonNumber(v float64) string {
	out, _ := json.Marshal(v)
	return string(out)
}
