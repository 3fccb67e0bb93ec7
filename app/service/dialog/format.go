package dialog

import (
	"encoding/json"
	"fmt"
	"strings"

	"rentagent/app/client/rentalapi"
)

const maxListedHouses = 10

// formatReply renders an API result as a user-facing Chinese reply:
// transport errors and response-level errors as 查询出错, listings as a
// numbered digest capped at ten rows, single objects as a one-liner.
func formatReply(result rentalapi.Result, err error) string {
	if err != nil {
		return fmt.Sprintf("查询出错：%v", err)
	}
	if msg := result.ErrorMessage(); msg != "" {
		return fmt.Sprintf("查询出错：%s", msg)
	}

	items, total := result.Items()
	if items != nil {
		if len(items) == 0 {
			return "没有找到符合条件的房源，可以放宽预算或换个区域试试。"
		}
		return formatListing(items, total)
	}

	if obj, ok := result.Object(); ok {
		addr := firstString(obj, "address", "community")
		price := firstValue(obj, "rent", "price")
		return fmt.Sprintf("房源：%s，月租 %v 元。", addr, price)
	}

	out, err := json.MarshalIndent(result.Data(), "", "  ")
	if err != nil {
		return fmt.Sprintf("查询出错：%v", err)
	}
	return string(out)
}

func formatListing(items []any, total int) string {
	lines := []string{fmt.Sprintf("根据您的条件共找到 %d 套房源：", total)}

	for i, item := range items {
		if i >= maxListedHouses {
			break
		}
		house, ok := item.(map[string]any)
		if !ok {
			lines = append(lines, fmt.Sprintf("%d. %v", i+1, item))
			continue
		}
		addr := firstString(house, "address", "community", "title")
		layout := firstValue(house, "layout", "rooms", "bedrooms")
		price := firstValue(house, "rent", "price", "monthly_rent")
		hid := firstValue(house, "house_id", "id")
		lines = append(lines, fmt.Sprintf("%d. %s | %v | %v元/月 | 房源ID: %v", i+1, addr, layout, price, hid))
	}

	if total > maxListedHouses {
		lines = append(lines, fmt.Sprintf("… 仅展示前 %d 条，共 %d 条。可补充条件或指定小区/地标缩小范围。", maxListedHouses, total))
	}

	return strings.Join(lines, "\n")
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstValue(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, exists := obj[key]; exists && v != nil && v != "" {
			return v
		}
	}
	return ""
}
