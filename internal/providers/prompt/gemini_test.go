package prompt

import (
	"strings"
	"testing"
)

func TestBuildMetaPromptIncludesBrief(t *testing.T) {
	brief := Brief{
		GeneralDescription:    "warm summer festival vibe",
		BackgroundDescription: "sunlit beach with palm trees",
		Copy:                  "Taste the Summer!",
	}
	got := buildMetaPrompt(brief)

	for _, want := range []string{
		"'Taste the Summer!'",
		"Overall style: warm summer festival vibe.",
		"- sunlit beach with palm trees",
		"empty space in the centre foreground",
		"Output only the final prompt.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("buildMetaPrompt() missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildMetaPromptNeverDescribesProduct(t *testing.T) {
	got := buildMetaPrompt(Brief{GeneralDescription: "minimal", BackgroundDescription: "studio", Copy: "Buy now"})
	if !strings.Contains(got, "Do not describe the product itself.") {
		t.Fatalf("buildMetaPrompt() missing product exclusion:\n%s", got)
	}
}

func TestFlattenPrompt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  a prompt  ", want: "a prompt"},
		{in: "line one\nline two", want: "line one line two"},
		{in: "\n\nwrapped\nanswer\n", want: "wrapped answer"},
	}
	for _, tc := range tests {
		if got := flattenPrompt(tc.in); got != tc.want {
			t.Fatalf("flattenPrompt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewGeminiGeneratorRequiresClient(t *testing.T) {
	if _, err := NewGeminiGenerator(nil, "gemini-2.0-flash"); err == nil {
		t.Fatal("NewGeminiGenerator(nil) expected error")
	}
}
