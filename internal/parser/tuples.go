package parser

import (
	"strings"

	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/scan"
)

// ExtractTuples walks every VALUES section in the input and returns the
// raw field literals of each balanced tuple, in input order. Malformed
// tuples are reported to issues and skipped; scanning resumes just
// after the failure point.
func ExtractTuples(text string, issues issue.Collector) [][]data.RawLiteral {
	var tuples [][]data.RawLiteral
	sp := scan.NewSplitter()

	pos := 0
	for {
		valuesIdx := scan.IndexKeyword(text, pos, "VALUES")
		if valuesIdx < 0 {
			break
		}

		// one statement runs until its terminating top-level semicolon
		segEnd := scan.IndexByteOutsideQuotes(text, valuesIdx, ';')
		if segEnd < 0 {
			segEnd = len(text)
		}
		seg := text[:segEnd]

		cur := valuesIdx + len("VALUES")
		for cur < segEnd {
			open := sp.IndexOpen(seg, cur)
			if open < 0 {
				break
			}
			closeIdx, serr := sp.Match(seg, open)
			if serr != nil {
				issues.Report(issue.Issue{
					Kind:    issue.KindStructural,
					Message: "tuple dropped: " + serr.Reason,
					Offset:  open,
					Context: excerpt(seg[open:]),
				})
				// resume after the failure point, past an unterminated
				// quote, so the rest of the section is still scanned
				if serr.Offset > open {
					cur = serr.Offset + 1
				} else {
					cur = open + 1
				}
				continue
			}

			fields, serr := sp.Split(seg[open+1 : closeIdx])
			if serr != nil {
				issues.Report(issue.Issue{
					Kind:    issue.KindStructural,
					Message: "tuple fields dropped: " + serr.Reason,
					Offset:  open + 1 + serr.Offset,
				})
				cur = closeIdx + 1
				continue
			}

			row := make([]data.RawLiteral, len(fields))
			for i, f := range fields {
				row[i] = fieldLiteral(f)
			}
			tuples = append(tuples, row)
			cur = closeIdx + 1
		}

		if segEnd >= len(text) {
			break
		}
		pos = segEnd + 1
	}

	return tuples
}

// fieldLiteral trims one raw field and records its enclosing quote
// character, if any, without unescaping.
func fieldLiteral(field string) data.RawLiteral {
	t := strings.TrimSpace(field)
	if len(t) >= 2 && (t[0] == '\'' || t[0] == '"') && t[len(t)-1] == t[0] {
		return data.RawLiteral{Text: t[1 : len(t)-1], Quote: t[0]}
	}
	return data.RawLiteral{Text: t}
}
