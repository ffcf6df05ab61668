package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	trailingYearPattern = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)
	bracketGroupPattern = regexp.MustCompile(`\[[^\]]*\]`)
	braceGroupPattern   = regexp.MustCompile(`\{[^}]*\}`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// punctReplacer rewrites separator punctuation after lowercasing. Underscores,
// dashes, and dots become spaces; apostrophes and colons disappear; ampersands
// spell out so "Tom & Jerry" and "Tom and Jerry" compare equal.
var punctReplacer = strings.NewReplacer(
	"_", " ",
	"-", " ",
	".", " ",
	"'", "",
	"’", "",
	":", "",
	"&", "and",
)

// Normalize canonicalizes a title or filename for comparison. The pipeline
// runs to a fixpoint: dropping an extension can expose a trailing year group
// ("Movie (2020).mkv"), so a single pass is not always stable. Termination is
// guaranteed because every step after the first pass only removes characters.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(name string) string {
	s := trailingYearPattern.ReplaceAllString(name, "")
	s = bracketGroupPattern.ReplaceAllString(s, "")
	s = braceGroupPattern.ReplaceAllString(s, "")
	s = dropExtension(s)
	s = strings.ToLower(s)
	s = punctReplacer.Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// dropExtension removes a file extension when the suffix plausibly is one.
// A bare dot inside a title ("Mr. Smith", "3.14") is not an extension: the
// suffix must be one to four characters, alphanumeric, with at least one
// letter.
func dropExtension(name string) string {
	ext := filepath.Ext(name)
	if len(ext) < 2 || len(ext) > 5 {
		return name
	}
	hasLetter := false
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return name
		}
	}
	if !hasLetter {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
