package scene

import (
	"errors"
	"strings"
)

var (
	errFieldMissing     = errors.New("field not found")
	errSeparatorMissing = errors.New("no ':' after field name")
	errEmptyValue       = errors.New("field value is empty")
)

// extractStringField returns the value of the first occurrence of the quoted
// field name in body. The scan is textual: nesting and escapes are not
// interpreted, and the first match wins even inside another string.
//
// A quoted value runs to the next '"' (or the end of input when unterminated).
// An unquoted value runs to the next ',' or '}' and is trimmed.
func extractStringField(body []byte, field string) (string, error) {
	text := string(body)
	needle := `"` + field + `"`

	i := strings.Index(text, needle)
	if i < 0 {
		return "", errFieldMissing
	}
	rest := text[i+len(needle):]

	j := strings.IndexByte(rest, ':')
	if j < 0 {
		return "", errSeparatorMissing
	}
	value := strings.TrimSpace(rest[j+1:])

	if strings.HasPrefix(value, `"`) {
		value = value[1:]
		if k := strings.IndexByte(value, '"'); k >= 0 {
			value = value[:k]
		}
	} else if k := strings.IndexAny(value, ",}"); k >= 0 {
		value = strings.TrimSpace(value[:k])
	}

	if value == "" {
		return "", errEmptyValue
	}
	return value, nil
}
