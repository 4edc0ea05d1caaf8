// Package naming provides the identifier conventions used for generated
// test names and folder paths.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToCamelCase converts free text such as a Postman item name into a
// camelCase identifier. Runs of characters that are neither letters nor
// digits separate words; the first word is lowercased and every following
// word is title-cased.
// Example: "Get user by id" -> "getUserById"
// Example: "create-order (v2)" -> "createOrderV2"
func ToCamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}

	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}
