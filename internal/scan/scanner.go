// Package scan implements the quote-and-bracket-aware splitter shared
// by schema parsing, tuple extraction, and the artifact decoder. Input
// is treated as three mutually exclusive regions: Normal text, where
// brackets and the separator are structural; a Quoted region entered on
// ' or " and exited on the same unescaped quote; and bracket nesting,
// tracked by a depth counter in the Normal region only. A separator is
// honored only at depth zero.
package scan

import "fmt"

// state of the region automaton
type state int

const (
	stateNormal state = iota
	stateQuoted
)

// StructuralError reports input that ended inside a quoted region or
// with unbalanced brackets. The caller skips the offending clause or
// tuple and continues; the error never aborts a whole dump.
type StructuralError struct {
	Reason string
	Offset int // byte offset where the problem was detected
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at offset %d: %s", e.Offset, e.Reason)
}

func unterminatedQuote(quote byte, offset int) *StructuralError {
	return &StructuralError{
		Reason: fmt.Sprintf("unterminated %c-quoted region", quote),
		Offset: offset,
	}
}

func unbalanced(bracket byte, offset int) *StructuralError {
	return &StructuralError{
		Reason: fmt.Sprintf("unbalanced %c", bracket),
		Offset: offset,
	}
}

// Splitter holds the bracket pair and separator for one splitting
// context. SQL statements use ( ) with comma; the Lua artifact decoder
// uses { } with comma over the same automaton.
type Splitter struct {
	open  byte
	close byte
	sep   byte
}

// NewSplitter returns the SQL-context splitter: parens and comma.
func NewSplitter() *Splitter {
	return &Splitter{open: '(', close: ')', sep: ','}
}

// NewDelimSplitter returns a splitter over an arbitrary bracket pair.
func NewDelimSplitter(open, close, sep byte) *Splitter {
	return &Splitter{open: open, close: close, sep: sep}
}

// Split produces the maximal substrings of input between top-level
// separators. Separators inside quoted regions or below bracket depth
// zero are literal text. Substrings are returned untrimmed.
func (sp *Splitter) Split(input string) ([]string, *StructuralError) {
	var parts []string
	start := 0
	st := stateNormal
	var quote byte
	quoteStart := 0
	depth := 0

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch st {
		case stateNormal:
			switch {
			case ch == '\'' || ch == '"':
				st = stateQuoted
				quote = ch
				quoteStart = i
			case ch == sp.open:
				depth++
			case ch == sp.close:
				depth--
				if depth < 0 {
					return nil, unbalanced(sp.close, i)
				}
			case ch == sp.sep && depth == 0:
				parts = append(parts, input[start:i])
				start = i + 1
			}
		case stateQuoted:
			switch {
			case ch == '\\' && i+1 < len(input):
				// backslash escape: next char is literal, including a quote
				i++
			case ch == quote:
				// doubled quote is an embedded literal quote, so one char
				// of lookahead decides whether the region actually ends
				if i+1 < len(input) && input[i+1] == quote {
					i++
				} else {
					st = stateNormal
				}
			}
		}
	}

	if st == stateQuoted {
		return nil, unterminatedQuote(quote, quoteStart)
	}
	if depth > 0 {
		return nil, unbalanced(sp.open, len(input))
	}
	parts = append(parts, input[start:])
	return parts, nil
}

// Match returns the index of the close bracket balancing the open
// bracket at openIdx. input[openIdx] must be the splitter's open byte.
func (sp *Splitter) Match(input string, openIdx int) (int, *StructuralError) {
	if openIdx < 0 || openIdx >= len(input) || input[openIdx] != sp.open {
		return -1, unbalanced(sp.open, openIdx)
	}
	st := stateNormal
	var quote byte
	quoteStart := 0
	depth := 0

	for i := openIdx; i < len(input); i++ {
		ch := input[i]
		switch st {
		case stateNormal:
			switch {
			case ch == '\'' || ch == '"':
				st = stateQuoted
				quote = ch
				quoteStart = i
			case ch == sp.open:
				depth++
			case ch == sp.close:
				depth--
				if depth == 0 {
					return i, nil
				}
			}
		case stateQuoted:
			switch {
			case ch == '\\' && i+1 < len(input):
				i++
			case ch == quote:
				if i+1 < len(input) && input[i+1] == quote {
					i++
				} else {
					st = stateNormal
				}
			}
		}
	}

	if st == stateQuoted {
		return -1, unterminatedQuote(quote, quoteStart)
	}
	return -1, unbalanced(sp.open, openIdx)
}

// IndexOpen returns the index of the next open bracket at depth zero
// in the Normal region, starting from from. Returns -1 when none
// remains before the input ends.
func (sp *Splitter) IndexOpen(input string, from int) int {
	st := stateNormal
	var quote byte
	for i := from; i < len(input); i++ {
		ch := input[i]
		switch st {
		case stateNormal:
			switch {
			case ch == '\'' || ch == '"':
				st = stateQuoted
				quote = ch
			case ch == sp.open:
				return i
			}
		case stateQuoted:
			switch {
			case ch == '\\' && i+1 < len(input):
				i++
			case ch == quote:
				if i+1 < len(input) && input[i+1] == quote {
					i++
				} else {
					st = stateNormal
				}
			}
		}
	}
	return -1
}
