package badge

import (
	"testing"
	"time"
)

func TestLabelClass(t *testing.T) {
	cases := map[string]string{
		"Go Beginner":         "label-beginner",
		"SQL INTERMEDIATE":    "label-intermediate",
		"Advanced Algorithms": "label-advanced",
		"Hackathon Winner":    "",
		"":                    "",
	}
	for in, want := range cases {
		if got := LabelClass(in); got != want {
			t.Fatalf("LabelClass(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatEarnedDate(t *testing.T) {
	d := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatEarnedDate(&d); got != "Nov 3, 2024" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatEarnedDate(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
