package extract

import (
	"strconv"
	"strings"
)

// Normalize coerces a raw condition map (from either extraction path) into
// the canonical schema: unknown keys and blank values are dropped, integer
// fields are coerced via float-then-int, bedrooms is always a string.
// Fields that fail coercion are skipped silently rather than failing the
// whole call. Normalize is idempotent.
func Normalize(raw map[string]any) Conditions {
	conditions := Conditions{}

	for key, value := range raw {
		if !allowedFields[key] || value == nil {
			continue
		}

		if intFields[key] {
			if n, ok := toInt(value); ok {
				conditions[key] = n
			}
			continue
		}

		if key == "bedrooms" {
			switch v := value.(type) {
			case string:
				if s := strings.TrimSpace(v); s != "" {
					conditions[key] = s
				}
			case int:
				conditions[key] = strconv.Itoa(v)
			case float64:
				conditions[key] = strconv.Itoa(int(v))
			}
			continue
		}

		switch v := value.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				conditions[key] = s
			}
		case bool:
			conditions[key] = strconv.FormatBool(v)
		}
	}

	return conditions
}

// Merge overlays incoming conditions on top of the previous turn's set.
// Blank incoming values never erase a previously set field; there is no
// per-field unset short of a session reset. Incoming wins ties.
func Merge(previous, incoming map[string]any) Conditions {
	merged := Normalize(previous)
	for key, value := range Normalize(incoming) {
		merged[key] = value
	}
	return merged
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
