package service

import "strings"

var slugPunct = strings.NewReplacer(" ", "_", "-", "_", ".", "_", "/", "_")

// Slugify converts a title into a URL-safe slug:
//
//	Slugify("[Some] _ Article's Title--") == "some-articles-title"
//
// The transform lowercases, folds common punctuation to underscores,
// strips everything that is not alphanumeric or underscore, then turns
// underscore runs into single hyphens. It is idempotent over its own
// output and returns "" for input with no usable characters.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugPunct.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	s = strings.ReplaceAll(b.String(), "_", " ")
	return strings.Join(strings.Fields(s), "-")
}
