package extract

import (
	"testing"

	"rentagent/app/config"
)

func TestUnwrapFencedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare json untouched",
			content: `{"district":"海淀"}`,
			want:    `{"district":"海淀"}`,
		},
		{
			name:    "plain fence",
			content: "```\n{\"district\":\"海淀\"}\n```",
			want:    `{"district":"海淀"}`,
		},
		{
			name:    "json tagged fence",
			content: "```json\n{\"max_price\":5000}\n```",
			want:    `{"max_price":5000}`,
		},
		{
			name:    "fence with surrounding prose",
			content: "提取结果如下：\n```json\n{\"bedrooms\":\"1\"}\n```\n已完成。",
			want:    `{"bedrooms":"1"}`,
		},
		{
			name:    "fence without object returned as is",
			content: "```\nnothing here\n```",
			want:    "```\nnothing here\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapFencedJSON(tt.content); got != tt.want {
				t.Errorf("unwrapFencedJSON(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestModelExtractorBaseURL(t *testing.T) {
	e := &ModelExtractor{cfg: &config.Config{
		LLM: config.LLM{
			BaseURL:     "https://openrouter.ai/api/v1/",
			ServicePort: 8888,
			ServicePath: "/v1",
		},
	}}

	tests := []struct {
		name    string
		modelIP string
		want    string
	}{
		{
			name:    "no hint uses configured base",
			modelIP: "",
			want:    "https://openrouter.ai/api/v1",
		},
		{
			name:    "plain ip gets port and path",
			modelIP: "10.0.0.5",
			want:    "http://10.0.0.5:8888/v1",
		},
		{
			name:    "full url passed through",
			modelIP: "http://10.0.0.5:9000/v1/",
			want:    "http://10.0.0.5:9000/v1",
		},
		{
			name:    "whitespace hint ignored",
			modelIP: "   ",
			want:    "https://openrouter.ai/api/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.baseURL(tt.modelIP); got != tt.want {
				t.Errorf("baseURL(%q) = %q, want %q", tt.modelIP, got, tt.want)
			}
		})
	}
}

func TestModelExtractorAvailable(t *testing.T) {
	unconfigured := &ModelExtractor{cfg: &config.Config{}}
	configured := &ModelExtractor{cfg: &config.Config{
		LLM: config.LLM{BaseURL: "http://localhost:8000/v1"},
	}}

	if unconfigured.Available("") {
		t.Error("Available() = true without backend or hint")
	}
	if !unconfigured.Available("10.0.0.5") {
		t.Error("Available() = false with model ip hint")
	}
	if !configured.Available("") {
		t.Error("Available() = false with configured base url")
	}
}
