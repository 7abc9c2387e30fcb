package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separatorRegexp  = regexp.MustCompile(`[_\-]+`)
	camelCaseRegexp  = regexp.MustCompile(`([a-z\d])([A-Z])`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// Humanize turns identifiers into display text:
//
//	Humanize("first_name")   // "First name"
//	Humanize("createdAt")    // "Created At"
//	Humanize("  is--valid ") // "Is valid"
func Humanize(str string) string {
	str = separatorRegexp.ReplaceAllString(str, " ")
	str = camelCaseRegexp.ReplaceAllString(str, "$1 $2")
	str = whitespaceRegexp.ReplaceAllString(str, " ")
	str = strings.TrimSpace(str)

	if str == "" {
		return str
	}

	_, size := utf8.DecodeRuneInString(str)
	// Caser is stateful, never share it between goroutines
	return cases.Title(language.Und, cases.NoLower).String(str[:size]) + str[size:]
}
