package naming

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayTitle renders a normalized name for user-facing output. A fresh
// caser is built per call; cases.Caser values are not safe for concurrent
// use.
func DisplayTitle(normalized string) string {
	if normalized == "" {
		return ""
	}
	return cases.Title(language.English).String(normalized)
}
