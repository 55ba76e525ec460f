package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxLength is the longest identifier accepted.
const MaxLength = 64

// ErrInvalidIdentifier is returned when a name breaks the kebab-case rule.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks that name is lowercase kebab-case and at most MaxLength
// characters long.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidIdentifier)
	}
	if len(name) > MaxLength {
		return fmt.Errorf("%w: %q is %d characters, maximum is %d", ErrInvalidIdentifier, name, len(name), MaxLength)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q must be lowercase letters, digits and single hyphens (e.g. pdf-processing)", ErrInvalidIdentifier, name)
	}
	return nil
}

// Title turns an identifier into a heading: "pdf-processing" -> "Pdf Processing".
// Only the first character of each word changes, so "2fa-setup" stays "2fa Setup".
func Title(name string) string {
	upper := cases.Upper(language.English)
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}
