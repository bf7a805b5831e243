package convert

import "strings"

// Unescape decodes the inner text of a quoted literal. Two conventions
// apply, one per layer: a doubled enclosing quote collapses to a single
// embedded quote (SQL style), then backslash escapes are decoded in one
// left-to-right pass trying, in order: \\ \' \" \n \t \r (C style).
// An unrecognized backslash sequence is kept verbatim. A single pass
// keeps escaping idempotent: re-escaping the result reproduces the
// displayed text.
func Unescape(text string, quote byte) string {
	if quote != 0 {
		doubled := string([]byte{quote, quote})
		text = strings.ReplaceAll(text, doubled, string(quote))
	}
	if !strings.ContainsRune(text, '\\') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '\\' || i+1 == len(text) {
			b.WriteByte(ch)
			continue
		}
		switch text[i+1] {
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(text[i+1])
		}
		i++
	}
	return b.String()
}
