package extract

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantMin   float64
		wantMax   float64
		hasMin    bool
		hasMax    bool
	}{
		{
			name:      "explicit max with dollar sign",
			utterance: "I want a phone under $1200",
			wantMax:   1200,
			hasMax:    true,
		},
		{
			name:      "explicit max without dollar sign",
			utterance: "something below 900 please",
			wantMax:   900,
			hasMax:    true,
		},
		{
			name:      "less than phrasing",
			utterance: "less than $750",
			wantMax:   750,
			hasMax:    true,
		},
		{
			name:      "explicit min",
			utterance: "must be above $1000",
			wantMin:   1000,
			hasMin:    true,
		},
		{
			name:      "at least phrasing",
			utterance: "at least 500 dollars",
			wantMin:   500,
			hasMin:    true,
		},
		{
			name:      "between range",
			utterance: "between $600 and $900",
			wantMin:   600,
			wantMax:   900,
			hasMin:    true,
			hasMax:    true,
		},
		{
			name:      "reversed range gets ordered",
			utterance: "between $900 and $600",
			wantMin:   600,
			wantMax:   900,
			hasMin:    true,
			hasMax:    true,
		},
		{
			name:      "dash range",
			utterance: "show me laptops $800-$1200",
			wantMin:   800,
			wantMax:   1200,
			hasMin:    true,
			hasMax:    true,
		},
		{
			name:      "around gives tolerance band",
			utterance: "around $800",
			wantMin:   640,
			wantMax:   960,
			hasMin:    true,
			hasMax:    true,
		},
		{
			name:      "budget phrasing is a ceiling",
			utterance: "my budget is $1500",
			wantMax:   1500,
			hasMax:    true,
		},
		{
			name:      "k suffix multiplies",
			utterance: "under $1.5k",
			wantMax:   1500,
			hasMax:    true,
		},
		{
			name:      "thousands separator",
			utterance: "under $1,299",
			wantMax:   1299,
			hasMax:    true,
		},
		{
			name:      "no numeric phrase",
			utterance: "a good phone for photos",
		},
		{
			name:      "vague quantifier is dropped not guessed",
			utterance: "under a lot of money",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.utterance)

			if tt.hasMin != (got.Min != nil) {
				t.Fatalf("Min presence = %v, want %v", got.Min != nil, tt.hasMin)
			}
			if tt.hasMax != (got.Max != nil) {
				t.Fatalf("Max presence = %v, want %v", got.Max != nil, tt.hasMax)
			}
			if tt.hasMin && *got.Min != tt.wantMin {
				t.Errorf("Min = %v, want %v", *got.Min, tt.wantMin)
			}
			if tt.hasMax && *got.Max != tt.wantMax {
				t.Errorf("Max = %v, want %v", *got.Max, tt.wantMax)
			}
		})
	}
}
