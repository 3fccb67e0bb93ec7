package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Fixed vocabularies for the rule-based path (Beijing). The model-backed
// path is free to produce names outside these lists.
var (
	districtRe = regexp.MustCompile(`海淀|朝阳|西城|东城|丰台|通州|昌平|大兴|房山|顺义|石景山`)
	landmarkRe = regexp.MustCompile(`西二旗|上地|国贸|望京|中关村|五道口|西二旗站|车公庄站|国贸站`)

	priceCapRe   = regexp.MustCompile(`(\d+)\s*以内|不超过\s*(\d+)\s*([元平])?|(?:预算|租金|价格)\s*(\d+)`)
	priceRangeRe = regexp.MustCompile(`(\d+)\s*[-~到]\s*(\d+)\s*(元|平)?`)

	bedroomRe = regexp.MustCompile(`([一二两三])\s*居|([0-9])\s*室|([一二两三])\s*室`)

	commuteRe = regexp.MustCompile(`西二旗\s*(\d+)\s*分钟|到西二旗\s*(\d+)\s*分钟|通勤\s*(\d+)\s*分钟`)

	areaCapRe   = regexp.MustCompile(`(\d+)\s*平(?:米)?\s*以内|不超过\s*(\d+)\s*平`)
	areaRangeRe = regexp.MustCompile(`(\d+)\s*[-~到]\s*(\d+)\s*平`)

	communityRe = regexp.MustCompile(`(?:小区名|小区)\s*[「"']?([^」"'\s]+)|([^\s]+)\s*小区`)
)

var numeralMap = map[string]int{"一": 1, "二": 2, "两": 2, "三": 3}

const nearSubwayDist = 800

// FromText extracts query conditions from free text by ordered pattern
// rules. It is total: unmatched or malformed input yields an empty set,
// never an error. Rules are independent; several may fill different fields
// in one pass.
func FromText(text string) Conditions {
	t := strings.TrimSpace(text)
	conditions := Conditions{}

	extractDistricts(t, conditions)
	extractLandmarks(t, conditions)
	extractPrice(t, conditions)
	extractBedrooms(t, conditions)
	extractKeywords(t, conditions)
	extractCommute(t, conditions)
	extractArea(t, conditions)
	extractCommunity(t, conditions)

	return conditions
}

// extractDistricts accumulates every administrative region mentioned into a
// de-duplicated, order-preserving comma list.
func extractDistricts(t string, conditions Conditions) {
	var names []string
	seen := map[string]bool{}
	for _, name := range districtRe.FindAllString(t, -1) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		conditions["district"] = strings.Join(names, ",")
	}
}

// extractLandmarks records a matched place name as a proximity target when a
// "nearby" cue is present, otherwise as the plain commercial-area field.
// The two are mutually exclusive for the same match.
func extractLandmarks(t string, conditions Conditions) {
	nearby := strings.Contains(t, "附近") || strings.Contains(t, "边上") || strings.Contains(t, "周边")
	for _, name := range landmarkRe.FindAllString(t, -1) {
		if nearby {
			conditions["landmark_nearby"] = name
		}
		if conditions.Str("area") == "" && conditions.Str("landmark_nearby") == "" {
			conditions["area"] = name
		}
	}
}

// extractPrice handles the at-most shapes (5000以内, 不超过6000, 预算3000)
// and the range shape (2000-4000). The range is evaluated second and may
// overwrite the max bound. A range scoped by the 平 unit word belongs to
// the area rule and is ignored here.
func extractPrice(t string, conditions Conditions) {
	if m := priceCapRe.FindStringSubmatch(t); m != nil && m[3] != "平" {
		if n, ok := firstInt([]string{m[1], m[2], m[4]}); ok {
			conditions["max_price"] = n
		}
	}
	if m := priceRangeRe.FindStringSubmatch(t); m != nil && m[3] != "平" {
		lo, okLo := parseInt(m[1])
		hi, okHi := parseInt(m[2])
		if okLo && okHi {
			conditions["min_price"] = lo
			conditions["max_price"] = hi
		}
	}
}

// extractBedrooms maps N-room phrasings (两居, 3室, 一室一厅) to a small
// integer via the fixed numeral lookup or direct digit capture.
func extractBedrooms(t string, conditions Conditions) {
	m := bedroomRe.FindStringSubmatch(t)
	if m == nil {
		return
	}
	word := m[1]
	if word == "" {
		word = m[3]
	}
	if word != "" {
		conditions["bedrooms"] = strconv.Itoa(numeralMap[word])
		return
	}
	if m[2] != "" {
		conditions["bedrooms"] = m[2]
	}
}

// extractKeywords covers the simple membership tests: rental type, near
// subway, decoration, orientation and elevator. The last matching keyword
// for a field wins.
func extractKeywords(t string, conditions Conditions) {
	if strings.Contains(t, "整租") {
		conditions["rental_type"] = "整租"
	}
	if strings.Contains(t, "合租") {
		conditions["rental_type"] = "合租"
	}

	if strings.Contains(t, "近地铁") || strings.Contains(t, "离地铁近") || strings.Contains(t, "地铁附近") {
		conditions["max_subway_dist"] = nearSubwayDist
	}

	if strings.Contains(t, "精装") {
		conditions["decoration"] = "精装"
	}
	if strings.Contains(t, "简装") {
		conditions["decoration"] = "简装"
	}

	if strings.Contains(t, "朝南") || strings.Contains(t, "南向") {
		conditions["orientation"] = "朝南"
	}

	if strings.Contains(t, "有电梯") || strings.Contains(t, "带电梯") {
		conditions["elevator"] = "true"
	}
	if strings.Contains(t, "无电梯") {
		conditions["elevator"] = "false"
	}
}

func extractCommute(t string, conditions Conditions) {
	if m := commuteRe.FindStringSubmatch(t); m != nil {
		if n, ok := firstInt(m[1:]); ok {
			conditions["commute_to_xierqi_max"] = n
		}
	}
}

// extractArea mirrors the price shapes, scoped by the 平 unit word.
func extractArea(t string, conditions Conditions) {
	if m := areaCapRe.FindStringSubmatch(t); m != nil {
		if n, ok := firstInt(m[1:]); ok {
			conditions["max_area"] = n
		}
	}
	if m := areaRangeRe.FindStringSubmatch(t); m != nil {
		lo, okLo := parseInt(m[1])
		hi, okHi := parseInt(m[2])
		if okLo && okHi {
			conditions["min_area"] = lo
			conditions["max_area"] = hi
		}
	}
}

// extractCommunity captures both phrasings: 小区 X and X 小区, trimming
// quote and bracket punctuation from the name.
func extractCommunity(t string, conditions Conditions) {
	m := communityRe.FindStringSubmatch(t)
	if m == nil {
		return
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	name = strings.Trim(name, `「」"'`)
	if name != "" {
		conditions["community"] = name
	}
}

func firstInt(groups []string) (int, bool) {
	for _, g := range groups {
		if g == "" {
			continue
		}
		if n, ok := parseInt(g); ok {
			return n, true
		}
	}
	return 0, false
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
