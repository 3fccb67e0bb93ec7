package dialog

import (
	"testing"

	"rentagent/app/client/rentalapi"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind intentKind
		wantID   string
	}{
		{
			name:     "reset keyword",
			text:     "重置房源数据",
			wantKind: intentReset,
		},
		{
			name:     "init keyword case insensitive",
			text:     "请 INIT 一下",
			wantKind: intentReset,
		},
		{
			name:     "rent a listing",
			text:     "租 HF_001",
			wantKind: intentRent,
			wantID:   "HF_001",
		},
		{
			name:     "rent via 租赁",
			text:     "租赁 HF_002 链家",
			wantKind: intentRent,
			wantID:   "HF_002",
		},
		{
			name:     "terminate wins over rent",
			text:     "退租 HF_001",
			wantKind: intentTerminate,
			wantID:   "HF_001",
		},
		{
			name:     "detail with keyword",
			text:     "看看房源 HF_003 的详情",
			wantKind: intentDetail,
			wantID:   "HF_003",
		},
		{
			name:     "bare id in short message",
			text:     "HF_004",
			wantKind: intentDetail,
			wantID:   "HF_004",
		},
		{
			name:     "condition query is no intent",
			text:     "海淀 5000以内 一居",
			wantKind: intentNone,
		},
		{
			name:     "id buried in long text without cue",
			text:     "我之前看过编号 HF_005 的信息，现在想找海淀的整租一居，预算五千，最好离地铁近一点",
			wantKind: intentNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectIntent(tt.text)
			if got.kind != tt.wantKind {
				t.Fatalf("detectIntent(%q).kind = %v, want %v", tt.text, got.kind, tt.wantKind)
			}
			if got.houseID != tt.wantID {
				t.Errorf("detectIntent(%q).houseID = %q, want %q", tt.text, got.houseID, tt.wantID)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "租 HF_001 链家", want: rentalapi.PlatformLianjia},
		{text: "退租 HF_001 58同城", want: rentalapi.Platform58},
		{text: "租 HF_001", want: rentalapi.PlatformAnjuke},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := detectPlatform(tt.text); got != tt.want {
				t.Errorf("detectPlatform(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
