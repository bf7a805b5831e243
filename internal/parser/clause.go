package parser

import "fmt"

// clause token kinds
type tokKind int

const (
	tokWord tokKind = iota
	tokLiteral
	tokNumber
	tokPunct
)

type clauseTok struct {
	kind  tokKind
	text  string
	quote byte // for tokLiteral: the enclosing quote character
}

func (t clauseTok) String() string {
	return fmt.Sprintf("tok(%d, %q)", t.kind, t.text)
}

func isClauseQuote(ch byte) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// tokenizeClause breaks one column clause into words, quoted literals,
// numbers, and punctuation. Doubled quote characters inside a literal
// stay embedded, as in the scanner. An unterminated literal fails the
// whole clause; the caller skips it and moves on.
func tokenizeClause(clause string) ([]clauseTok, error) {
	var toks []clauseTok
	i := 0
	for i < len(clause) {
		ch := clause[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isClauseQuote(ch):
			quote := ch
			j := i + 1
			closed := false
			for j < len(clause) {
				if clause[j] == '\\' && j+1 < len(clause) {
					j += 2
					continue
				}
				if clause[j] == quote {
					if j+1 < len(clause) && clause[j+1] == quote {
						j += 2
						continue
					}
					closed = true
					break
				}
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated %c-quoted token at offset %d", quote, i)
			}
			toks = append(toks, clauseTok{kind: tokLiteral, text: clause[i+1 : j], quote: quote})
			i = j + 1
		case isLetter(ch):
			j := i
			for j < len(clause) && (isLetter(clause[j]) || isDigit(clause[j])) {
				j++
			}
			toks = append(toks, clauseTok{kind: tokWord, text: clause[i:j]})
			i = j
		case isDigit(ch) || (ch == '-' && i+1 < len(clause) && isDigit(clause[i+1])):
			j := i + 1
			for j < len(clause) {
				c := clause[j]
				if isDigit(c) || c == '.' || c == 'e' || c == 'E' {
					j++
					continue
				}
				// exponent sign
				if (c == '+' || c == '-') && (clause[j-1] == 'e' || clause[j-1] == 'E') {
					j++
					continue
				}
				break
			}
			toks = append(toks, clauseTok{kind: tokNumber, text: clause[i:j]})
			i = j
		default:
			toks = append(toks, clauseTok{kind: tokPunct, text: string(ch)})
			i++
		}
	}
	return toks, nil
}
