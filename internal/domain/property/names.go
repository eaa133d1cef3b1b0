package property

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName collapses inner whitespace and title-cases names typed in
// all lower or all upper case. Mixed case input is kept as typed.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		return cases.Title(language.English).String(name)
	}
	return name
}
