package store

import "testing"

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Government ", "government"},
		{"CAFÉ", "café"},
		{"café", "café"},
		{"সময়", "সময়"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%+q) = %+q, want %+q", tt.in, got, tt.want)
		}
	}
}
