package manifest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/outline-labs/opc/internal/issue"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidateIdentifier enforces the lowerCamelCase rule for new plugin,
// widget, and node identifiers: the first character is not uppercase and
// the identifier contains neither '_' nor '-'. Identifiers must also be
// usable as a single path segment.
func ValidateIdentifier(id string) error {
	if err := CheckSegment(id); err != nil {
		return err
	}

	first, _ := utf8.DecodeRuneInString(id)
	if unicode.IsUpper(first) {
		return invalidIdentifier(id, "must not start with an uppercase character")
	}
	if strings.ContainsAny(id, "_-") {
		return invalidIdentifier(id, "must not contain '_' or '-'")
	}
	return nil
}

// CheckSegment rejects identifiers that would escape the project root or
// cannot name a file: empty, dotted, containing separators, whitespace,
// or control characters. It applies to every identifier, including ones
// already present in a manifest.
func CheckSegment(id string) error {
	if id == "" {
		return invalidIdentifier(id, "must not be empty")
	}
	if !utf8.ValidString(id) {
		return invalidIdentifier(id, "must be valid UTF-8")
	}
	if strings.ContainsAny(id, `/\.:`) {
		return invalidIdentifier(id, "must not contain '/', '\\', '.' or ':'")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return invalidIdentifier(id, "must not contain whitespace or control characters")
		}
	}
	return nil
}

func invalidIdentifier(id, reason string) *issue.Error {
	return issue.New(issue.InvalidIdentifier, reason).WithElement(id)
}

// DisplayName derives a human-readable name from a lowerCamelCase
// identifier by inserting a space before every uppercase character and
// capitalising the first: "sampleWidget" becomes "Sample Widget". Only the
// first character changes case, so "foo+bar" becomes "Foo+bar".
func DisplayName(id string) string {
	if id == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(id)
	var b strings.Builder
	// Casers are stateful; one per call.
	b.WriteString(cases.Upper(language.Und).String(string(first)))
	for _, r := range id[size:] {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
