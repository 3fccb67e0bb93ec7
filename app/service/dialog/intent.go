package dialog

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rentagent/app/client/rentalapi"

	"github.com/elliotchance/pie/v2"
)

type intentKind int

const (
	intentNone intentKind = iota
	intentReset
	intentRent
	intentTerminate
	intentDetail
)

type intent struct {
	kind    intentKind
	houseID string
}

var (
	rentRe      = regexp.MustCompile(`(?:租|租赁)\s*([A-Z]+_\d+)`)
	terminateRe = regexp.MustCompile(`退租\s*([A-Z]+_\d+)`)
	detailRe    = regexp.MustCompile(`(?:房源|房子)\s*([A-Z]+_\d+)|([A-Z]+_\d+)`)
)

// detectIntent classifies single-shot commands that bypass condition
// extraction: dataset reset, renting or terminating a concrete listing, and
// listing detail lookup. Anything else is treated as a condition query.
func detectIntent(text string) intent {
	if strings.Contains(text, "重置") || strings.Contains(text, "初始化") ||
		strings.Contains(strings.ToLower(text), "init") {
		return intent{kind: intentReset}
	}

	if m := rentRe.FindStringSubmatch(text); m != nil &&
		strings.Contains(text, "租") && !strings.Contains(text, "退") {
		return intent{kind: intentRent, houseID: m[1]}
	}

	if m := terminateRe.FindStringSubmatch(text); m != nil {
		return intent{kind: intentTerminate, houseID: m[1]}
	}

	if m := detailRe.FindStringSubmatch(text); m != nil {
		wantsDetail := strings.Contains(text, "详情") ||
			strings.Contains(text, "介绍") ||
			strings.Contains(text, "看看") ||
			utf8.RuneCountInString(text) < 30
		if wantsDetail {
			id := m[1]
			if id == "" {
				id = m[2]
			}
			return intent{kind: intentDetail, houseID: strings.TrimSpace(id)}
		}
	}

	return intent{kind: intentNone}
}

type platformKeyword struct {
	keyword  string
	platform string
}

var platformKeywords = []platformKeyword{
	{keyword: "链家", platform: rentalapi.PlatformLianjia},
	{keyword: "58", platform: rentalapi.Platform58},
}

// detectPlatform picks the listing platform mentioned in the message,
// defaulting to 安居客.
func detectPlatform(text string) string {
	idx := pie.FindFirstUsing(platformKeywords, func(pk platformKeyword) bool {
		return strings.Contains(text, pk.keyword)
	})
	if idx < 0 {
		return rentalapi.PlatformAnjuke
	}
	return platformKeywords[idx].platform
}
