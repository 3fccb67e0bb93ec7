package extract

import (
	"reflect"
	"testing"
)

func TestFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Conditions
	}{
		{
			name: "district with price cap",
			text: "海淀 5000以内",
			want: Conditions{"district": "海淀", "max_price": 5000},
		},
		{
			name: "multiple districts accumulate in order",
			text: "海淀 朝阳 都行",
			want: Conditions{"district": "海淀,朝阳"},
		},
		{
			name: "repeated district mentioned once",
			text: "海淀 还是 海淀",
			want: Conditions{"district": "海淀"},
		},
		{
			name: "price range",
			text: "2000到4000",
			want: Conditions{"min_price": 2000, "max_price": 4000},
		},
		{
			name: "price range with dash and unit",
			text: "3000-6000元",
			want: Conditions{"min_price": 3000, "max_price": 6000},
		},
		{
			name: "budget phrasing",
			text: "预算 4500",
			want: Conditions{"max_price": 4500},
		},
		{
			name: "cap phrasing",
			text: "不超过6000",
			want: Conditions{"max_price": 6000},
		},
		{
			name: "numeral bedrooms",
			text: "两居",
			want: Conditions{"bedrooms": "2"},
		},
		{
			name: "digit bedrooms",
			text: "3室",
			want: Conditions{"bedrooms": "3"},
		},
		{
			name: "numeral shi bedrooms",
			text: "一室一厅",
			want: Conditions{"bedrooms": "1"},
		},
		{
			name: "rental type and subway keyword",
			text: "整租 近地铁",
			want: Conditions{"rental_type": "整租", "max_subway_dist": 800},
		},
		{
			name: "decoration orientation elevator",
			text: "精装 朝南 有电梯",
			want: Conditions{"decoration": "精装", "orientation": "朝南", "elevator": "true"},
		},
		{
			name: "no elevator",
			text: "无电梯也行",
			want: Conditions{"elevator": "false"},
		},
		{
			name: "commute to xierqi",
			text: "到西二旗30分钟以内",
			want: Conditions{"area": "西二旗", "commute_to_xierqi_max": 30},
		},
		{
			name: "area cap does not become price",
			text: "不超过50平",
			want: Conditions{"max_area": 50},
		},
		{
			name: "area range does not become price range",
			text: "50-80平",
			want: Conditions{"min_area": 50, "max_area": 80},
		},
		{
			name: "landmark with nearby cue",
			text: "国贸附近",
			want: Conditions{"landmark_nearby": "国贸"},
		},
		{
			name: "landmark without cue is an area",
			text: "望京 一居",
			want: Conditions{"area": "望京", "bedrooms": "1"},
		},
		{
			name: "community prefix form",
			text: "小区 回龙观新村",
			want: Conditions{"community": "回龙观新村"},
		},
		{
			name: "community suffix form",
			text: "融泽嘉园 小区",
			want: Conditions{"community": "融泽嘉园"},
		},
		{
			name: "combined query",
			text: "海淀 5000以内 一居 整租 近地铁",
			want: Conditions{
				"district":        "海淀",
				"max_price":       5000,
				"bedrooms":        "1",
				"rental_type":     "整租",
				"max_subway_dist": 800,
			},
		},
		{
			name: "unmatched text yields empty set",
			text: "今天天气不错",
			want: Conditions{},
		},
		{
			name: "empty input",
			text: "",
			want: Conditions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromText(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFromTextNearbyOverArea(t *testing.T) {
	got := FromText("西二旗附近 合租")

	if got.Str("landmark_nearby") != "西二旗" {
		t.Errorf("landmark_nearby = %q, want 西二旗", got.Str("landmark_nearby"))
	}
	if got.Str("area") != "" {
		t.Errorf("area = %q, want empty when nearby cue present", got.Str("area"))
	}
	if got.Str("rental_type") != "合租" {
		t.Errorf("rental_type = %q, want 合租", got.Str("rental_type"))
	}
}
