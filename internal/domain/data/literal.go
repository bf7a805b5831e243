package data

import "strings"

// RawLiteral is the unparsed text of one field inside a value tuple,
// captured before coercion. Quote is the enclosing quote character
// ('\'' or '"'), or zero when the literal was unquoted.
type RawLiteral struct {
	Text  string
	Quote byte
}

func (r RawLiteral) IsQuoted() bool {
	return r.Quote != 0
}

// IsNullKeyword reports whether the literal is the bare keyword NULL.
// Quoted 'NULL' is ordinary text, not the keyword.
func (r RawLiteral) IsNullKeyword() bool {
	return !r.IsQuoted() && strings.EqualFold(r.Text, "NULL")
}
