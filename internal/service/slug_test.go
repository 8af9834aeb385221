package service_test

import (
	"strings"
	"testing"

	"github.com/gopress-cms/gopress/internal/service"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"reference case", "[Some] _ Article's Title--", "some-articles-title"},
		{"simple title", "My First Post", "my-first-post"},
		{"already a slug", "my-first-post", "my-first-post"},
		{"dots and slashes", "a.b/c d", "a-b-c-d"},
		{"empty", "", ""},
		{"only punctuation", "!!! ??? ...", ""},
		{"leading and trailing noise", "  --Hello--  ", "hello"},
		{"digits survive", "Top 10 Tips", "top-10-tips"},
		{"collapses runs", "a  -  b", "a-b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.Slugify(tc.input); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"[Some] _ Article's Title--",
		"My First Post",
		"Top 10 Tips",
		"a.b/c d",
		"",
	}
	for _, input := range inputs {
		once := service.Slugify(input)
		twice := service.Slugify(once)
		if once != twice {
			t.Fatalf("Slugify not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSlugify_OutputCharset(t *testing.T) {
	inputs := []string{
		"[Some] _ Article's Title--",
		"Über Café — Menü!",
		"  spaced   out  title  ",
		"MIXED case AND 123",
	}
	for _, input := range inputs {
		got := service.Slugify(input)
		for _, r := range got {
			valid := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			if !valid {
				t.Fatalf("Slugify(%q) = %q contains invalid rune %q", input, got, r)
			}
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Fatalf("Slugify(%q) = %q has a leading or trailing hyphen", input, got)
		}
		if strings.Contains(got, "--") {
			t.Fatalf("Slugify(%q) = %q has consecutive hyphens", input, got)
		}
	}
}
