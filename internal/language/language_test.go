package language

import (
	"slices"
	"testing"
)

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"EN", "eng"},
		{"ja", "jpn"},
		{"jpn", "jpn"},
		{"japanese", "jpn"},
		{" German ", "deu"},
		{"cze", "ces"},
		{"fr", "fra"},
		{"fre", "fra"},
		{"de", "deu"},
		{"ger", "deu"},
		{" eng ", "eng"},
		{"th", "tha"}, // resolved through CLDR
		{"xy", "und"}, // unknown 2-letter becomes undefined
		{"", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO3(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"jpn", []string{"jpn"}},
		{"ja", []string{"jpn"}},
		{"eng", []string{"eng"}},
		{"de", []string{"deu", "ger"}},
		{"ger", []string{"deu", "ger"}},
		{"chi", []string{"zho", "chi"}},
		{"french", []string{"fra", "fre"}},
		{"qqq", []string{"qqq"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Aliases(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("Aliases(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"jpn", "Japanese"},
		{"eng", "English"},
		{"ger", "German"},
		{"th", "Thai"},
		{"", "Unknown"},
		{"und", "Unknown"},
		{"xy", "XY"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
