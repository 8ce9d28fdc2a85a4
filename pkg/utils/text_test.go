package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Simple word", input: "Apartment", want: "apartment"},
		{name: "Two words", input: "Family House", want: "family-house"},
		{name: "Punctuation runs", input: "  Studio -- Flat!! ", want: "studio-flat"},
		{name: "Digits kept", input: "2 Bed Room", want: "2-bed-room"},
		{name: "Empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  Dhaka \t  Gulshan\n"); got != "Dhaka Gulshan" {
		t.Errorf("CollapseSpaces() = %q, want %q", got, "Dhaka Gulshan")
	}
}
