package grammar

import "testing"

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  RangeResult
	}{
		{"simple", "1-10", RangeOK},
		{"with step", "0-100:5", RangeOK},
		{"single element", "3-3", RangeOK},
		{"reversed", "10-1", RangeOutOfBounds},
		{"negative start", "-1-10", RangeMalformed},
		{"zero step", "1-10:0", RangeOutOfBounds},
		{"huge end", "1-99999999999", RangeOutOfBounds},
		{"no dash", "10", RangeMalformed},
		{"garbage", "a-b", RangeMalformed},
		{"trailing garbage", "1-10:x", RangeMalformed},
		{"empty", "", RangeMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRange(tt.value); got != tt.want {
				t.Fatalf("CheckRange(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
