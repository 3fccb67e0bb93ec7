package extract

// Conditions is a normalized set of rental query conditions keyed by the
// fixed field schema. A missing key means "unconstrained", never "explicitly
// excluded". Integer fields hold int, everything else holds a trimmed string.
type Conditions map[string]any

// History roles used both in session storage and in the extraction prompt.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var allowedFields = map[string]bool{
	"district":              true,
	"area":                  true,
	"min_price":             true,
	"max_price":             true,
	"bedrooms":              true,
	"rental_type":           true,
	"max_subway_dist":       true,
	"subway_station":        true,
	"commute_to_xierqi_max": true,
	"decoration":            true,
	"orientation":           true,
	"elevator":              true,
	"min_area":              true,
	"max_area":              true,
	"community":             true,
	"landmark_nearby":       true,
}

var intFields = map[string]bool{
	"min_price":             true,
	"max_price":             true,
	"max_subway_dist":       true,
	"commute_to_xierqi_max": true,
	"min_area":              true,
	"max_area":              true,
}

// Str returns the string value of key, or "" when absent or not a string.
func (c Conditions) Str(key string) string {
	v, _ := c[key].(string)
	return v
}

// Int returns the int value of key, or 0 when absent or not an int.
func (c Conditions) Int(key string) int {
	v, _ := c[key].(int)
	return v
}
