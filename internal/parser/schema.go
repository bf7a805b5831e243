// Package parser extracts the schema declaration and the batched value
// tuples from one SQL dump. It is deliberately a dump parser, not a SQL
// parser: it understands one CREATE TABLE statement and the VALUES
// sections of INSERT statements, and nothing else.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/dumpconv/internal/convert"
	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
	"github.com/leengari/dumpconv/internal/scan"
)

// constraint-clause leading keywords; these clauses declare indexes or
// table constraints, not columns, and are skipped without an issue
var constraintKeywords = map[string]bool{
	"PRIMARY":    true,
	"UNIQUE":     true,
	"KEY":        true,
	"INDEX":      true,
	"CONSTRAINT": true,
	"FOREIGN":    true,
	"FULLTEXT":   true,
	"SPATIAL":    true,
	"CHECK":      true,
}

// Schema is the parsed CREATE TABLE declaration.
type Schema struct {
	TableName string
	Columns   []schema.Column
}

// ParseSchema locates the CREATE TABLE statement, splits its clause
// block on top-level commas, and parses each column clause. Malformed
// clauses are reported to issues and skipped; only a completely missing
// or unreadable declaration is a hard error.
func ParseSchema(text string, issues issue.Collector) (*Schema, error) {
	createIdx := scan.IndexKeyword(text, 0, "CREATE")
	if createIdx < 0 {
		return nil, ErrNoSchema
	}
	tableIdx := scan.IndexKeyword(text, createIdx, "TABLE")
	if tableIdx < 0 {
		return nil, ErrNoSchema
	}

	sp := scan.NewSplitter()
	open := sp.IndexOpen(text, tableIdx+len("TABLE"))
	if open < 0 {
		return nil, ErrNoSchema
	}

	name := tableNameBetween(text[tableIdx+len("TABLE") : open])
	if name == "" {
		return nil, ErrNoSchema
	}

	closeIdx, serr := sp.Match(text, open)
	if serr != nil {
		issues.Report(issue.Issue{
			Kind:    issue.KindStructural,
			Message: "schema clause block is unbalanced: " + serr.Reason,
			Offset:  serr.Offset,
		})
		return nil, ErrNoSchema
	}

	clauses, serr := sp.Split(text[open+1 : closeIdx])
	if serr != nil {
		issues.Report(issue.Issue{
			Kind:    issue.KindStructural,
			Message: "cannot split schema clauses: " + serr.Reason,
			Offset:  open + 1 + serr.Offset,
		})
		return nil, ErrNoSchema
	}

	s := &Schema{TableName: name}
	seen := make(map[string]bool)
	for _, clause := range clauses {
		col := parseColumnClause(clause, issues)
		if col == nil {
			continue
		}
		if seen[col.Name] {
			issues.Report(issue.Issue{
				Kind:    issue.KindSchema,
				Message: fmt.Sprintf("duplicate column name %q, later declaration wins the record key", col.Name),
				Offset:  -1,
			})
		}
		seen[col.Name] = true
		s.Columns = append(s.Columns, *col)
	}
	return s, nil
}

// tableNameBetween extracts the table name from the text between the
// TABLE keyword and the opening paren, tolerating IF NOT EXISTS and any
// of the three quote styles.
func tableNameBetween(between string) string {
	fields := strings.Fields(between)
	// drop IF NOT EXISTS
	for len(fields) > 0 {
		switch strings.ToUpper(fields[0]) {
		case "IF", "NOT", "EXISTS":
			fields = fields[1:]
		default:
			return unquoteName(fields[0])
		}
	}
	return ""
}

func unquoteName(raw string) string {
	if len(raw) >= 2 && isClauseQuote(raw[0]) && raw[len(raw)-1] == raw[0] {
		return convert.Unescape(raw[1:len(raw)-1], raw[0])
	}
	return raw
}

// parseColumnClause parses one comma-separated clause of the CREATE
// TABLE block. Returns nil when the clause is a constraint declaration
// or is skipped with an issue.
func parseColumnClause(clause string, issues issue.Collector) *schema.Column {
	trimmed := strings.TrimSpace(clause)
	if trimmed == "" {
		return nil
	}

	toks, err := tokenizeClause(trimmed)
	if err != nil {
		issues.Report(issue.Issue{
			Kind:    issue.KindStructural,
			Message: "column clause dropped: " + err.Error(),
			Offset:  -1,
			Context: excerpt(trimmed),
		})
		return nil
	}
	if len(toks) == 0 {
		return nil
	}

	if toks[0].kind == tokWord && constraintKeywords[strings.ToUpper(toks[0].text)] {
		return nil
	}

	// the column name is the first quoted token in the clause
	nameIdx := -1
	for i, tok := range toks {
		if tok.kind == tokLiteral {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		issues.Report(issue.Issue{
			Kind:    issue.KindSchema,
			Message: "column clause has no quoted name, skipped",
			Offset:  -1,
			Context: excerpt(trimmed),
		})
		return nil
	}

	col := &schema.Column{
		Name: convert.Unescape(toks[nameIdx].text, toks[nameIdx].quote),
		Type: schema.TypeText,
	}

	rest := toks[nameIdx+1:]

	// type keyword is the first bareword after the name
	i := 0
	for i < len(rest) && rest[i].kind != tokWord {
		i++
	}
	if i < len(rest) {
		col.Type, _ = schema.MapTypeKeyword(rest[i].text)
		i++
		// optional (size) immediately following the type
		if i+1 < len(rest) && rest[i].kind == tokPunct && rest[i].text == "(" && rest[i+1].kind == tokNumber {
			if n, err := strconv.Atoi(rest[i+1].text); err == nil {
				col.Size = n
			}
			for i < len(rest) && !(rest[i].kind == tokPunct && rest[i].text == ")") {
				i++
			}
			if i < len(rest) {
				i++
			}
		}
	}

	for ; i < len(rest); i++ {
		if rest[i].kind != tokWord {
			continue
		}
		switch strings.ToUpper(rest[i].text) {
		case "NOT":
			if i+1 < len(rest) && rest[i+1].kind == tokWord && strings.EqualFold(rest[i+1].text, "NULL") {
				col.NotNull = true
				i++
			}
		case "AUTO_INCREMENT", "AUTOINCREMENT":
			col.AutoIncrement = true
		case "DEFAULT":
			if i+1 < len(rest) {
				def := rest[i+1]
				switch def.kind {
				case tokLiteral:
					col.Default = &data.RawLiteral{Text: def.text, Quote: def.quote}
				case tokWord, tokNumber:
					col.Default = &data.RawLiteral{Text: def.text}
				}
				i++
			}
		}
	}

	return col
}

func excerpt(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...", s[:max])
}
