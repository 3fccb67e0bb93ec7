package dialog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"rentagent/app/client/rentalapi"
)

func TestFormatReplyErrors(t *testing.T) {
	got := formatReply(rentalapi.Result{}, errors.New("connection refused"))
	if !strings.HasPrefix(got, "查询出错：") {
		t.Errorf("transport error reply = %q", got)
	}

	got = formatReply(errorResult("HTTP 500"), nil)
	if got != "查询出错：HTTP 500" {
		t.Errorf("api error reply = %q", got)
	}
}

func TestFormatReplyListing(t *testing.T) {
	got := formatReply(listResult("HF_001", "HF_002"), nil)

	if !strings.HasPrefix(got, "根据您的条件共找到 2 套房源：") {
		t.Errorf("header missing: %q", got)
	}
	if !strings.Contains(got, "1. 融泽嘉园 | 1室1厅 | 4800元/月 | 房源ID: HF_001") {
		t.Errorf("row missing: %q", got)
	}
	if strings.Contains(got, "仅展示前") {
		t.Errorf("short list should not be truncated: %q", got)
	}
}

func TestFormatReplyTruncatesLongListing(t *testing.T) {
	ids := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		ids = append(ids, fmt.Sprintf("HF_%03d", i))
	}

	got := formatReply(listResult(ids...), nil)
	lines := strings.Split(got, "\n")

	// header + 10 rows + truncation note
	if len(lines) != 12 {
		t.Fatalf("line count = %d, want 12:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[11], "仅展示前 10 条，共 25 条") {
		t.Errorf("truncation note = %q", lines[11])
	}
}

func TestFormatReplyRespectsReportedTotal(t *testing.T) {
	res := rentalapi.NewResult(map[string]any{
		"data": map[string]any{
			"items": []any{map[string]any{"house_id": "HF_001", "address": "上地东路", "layout": "2室", "rent": float64(6200)}},
			"total": float64(134),
		},
	})

	got := formatReply(res, nil)
	if !strings.HasPrefix(got, "根据您的条件共找到 134 套房源：") {
		t.Errorf("header = %q", got)
	}
}

func TestFormatReplyEmptyListing(t *testing.T) {
	got := formatReply(listResult(), nil)
	if got != "没有找到符合条件的房源，可以放宽预算或换个区域试试。" {
		t.Errorf("empty listing reply = %q", got)
	}
}

func TestFormatReplySingleHouse(t *testing.T) {
	res := rentalapi.NewResult(map[string]any{
		"data": map[string]any{
			"address": "上地东路酒店式公寓",
			"rent":    float64(5200),
		},
	})

	got := formatReply(res, nil)
	if got != "房源：上地东路酒店式公寓，月租 5200 元。" {
		t.Errorf("single house reply = %q", got)
	}
}

func TestFormatReplyFieldFallbacks(t *testing.T) {
	res := rentalapi.NewResult([]any{
		map[string]any{"title": "近地铁一居", "bedrooms": "1", "monthly_rent": float64(3900), "id": "HF_009"},
	})

	got := formatReply(res, nil)
	if !strings.Contains(got, "1. 近地铁一居 | 1 | 3900元/月 | 房源ID: HF_009") {
		t.Errorf("fallback row = %q", got)
	}
}
