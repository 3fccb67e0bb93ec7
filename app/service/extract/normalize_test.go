package extract

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Conditions
	}{
		{
			name: "unknown keys dropped",
			raw:  map[string]any{"district": "海淀", "pets_allowed": true},
			want: Conditions{"district": "海淀"},
		},
		{
			name: "nil and blank values dropped",
			raw:  map[string]any{"district": nil, "area": "  ", "community": ""},
			want: Conditions{},
		},
		{
			name: "numeric strings coerced for int fields",
			raw:  map[string]any{"max_price": "5000", "min_area": "60.0"},
			want: Conditions{"max_price": 5000, "min_area": 60},
		},
		{
			name: "json numbers coerced for int fields",
			raw:  map[string]any{"max_price": float64(4500), "commute_to_xierqi_max": float64(30)},
			want: Conditions{"max_price": 4500, "commute_to_xierqi_max": 30},
		},
		{
			name: "non numeric int field dropped",
			raw:  map[string]any{"max_price": "五千"},
			want: Conditions{},
		},
		{
			name: "bedrooms stays a string",
			raw:  map[string]any{"bedrooms": float64(2)},
			want: Conditions{"bedrooms": "2"},
		},
		{
			name: "bedrooms list string kept",
			raw:  map[string]any{"bedrooms": "1,2"},
			want: Conditions{"bedrooms": "1,2"},
		},
		{
			name: "bool becomes string",
			raw:  map[string]any{"elevator": true},
			want: Conditions{"elevator": "true"},
		},
		{
			name: "strings trimmed",
			raw:  map[string]any{"district": " 海淀 "},
			want: Conditions{"district": "海淀"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"district":  "海淀",
		"max_price": "5000",
		"bedrooms":  float64(1),
		"elevator":  true,
	}

	once := Normalize(raw)
	twice := Normalize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize not idempotent: %v then %v", once, twice)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		previous map[string]any
		incoming map[string]any
		want     Conditions
	}{
		{
			name:     "empty incoming keeps previous",
			previous: map[string]any{"district": "海淀"},
			incoming: nil,
			want:     Conditions{"district": "海淀"},
		},
		{
			name:     "incoming adds new fields",
			previous: map[string]any{"district": "海淀"},
			incoming: map[string]any{"max_price": 5000},
			want:     Conditions{"district": "海淀", "max_price": 5000},
		},
		{
			name:     "incoming overrides previous",
			previous: map[string]any{"district": "海淀"},
			incoming: map[string]any{"district": "朝阳"},
			want:     Conditions{"district": "朝阳"},
		},
		{
			name:     "blank incoming value does not erase",
			previous: map[string]any{"district": "海淀"},
			incoming: map[string]any{"district": ""},
			want:     Conditions{"district": "海淀"},
		},
		{
			name:     "both empty",
			previous: nil,
			incoming: nil,
			want:     Conditions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.previous, tt.incoming)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge(%v, %v) = %v, want %v", tt.previous, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotMutatePrevious(t *testing.T) {
	previous := Conditions{"district": "海淀"}
	Merge(previous, map[string]any{"district": "朝阳"})

	if previous.Str("district") != "海淀" {
		t.Errorf("previous mutated: %v", previous)
	}
}
