// Package validate holds the field-level checks shared by every resource
// handler: e-mail syntax, YYYY-MM-DD dates, free-text sanitization and
// whitelist membership for sort/order query values.
package validate

import (
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// Email reports whether value is a syntactically valid e-mail address.
func Email(value string) bool {
	return validate.Var(value, "required,email") == nil
}

// Date reports whether value is a strict YYYY-MM-DD date.
func Date(value string) bool {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return false
	}
	return parsed.Format(dateLayout) == value
}

// Sanitize trims the value, strips markup tags, and escapes what remains.
// Never apply it to credentials; passwords are opaque secrets.
func Sanitize(value string) string {
	return html.EscapeString(stripTags(strings.TrimSpace(value)))
}

func stripTags(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inTag := false
	for _, r := range value {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SortColumn returns requested when it is a member of allowed, otherwise
// fallback. The returned value is safe to interpolate into ORDER BY.
func SortColumn(requested, fallback string, allowed []string) string {
	for _, column := range allowed {
		if requested == column {
			return column
		}
	}
	return fallback
}

// Order normalizes the order query value: "desc" (any case) sorts
// descending, anything else ascending.
func Order(requested string) string {
	if strings.EqualFold(requested, "desc") {
		return "DESC"
	}
	return "ASC"
}
