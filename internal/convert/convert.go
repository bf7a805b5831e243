// Package convert maps raw tuple literals to typed values using column
// metadata when it is available and literal-shape inference when it is
// not. Coercion never fails hard: an unparseable literal degrades to a
// type-appropriate default and the degradation is reported to the
// issue collector.
package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

var (
	integerRe = regexp.MustCompile(`^-?[0-9]+$`)
	// decimal or exponential form; at least one of the fraction or
	// exponent parts must be present, otherwise it is an integer
	floatRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+[eE][+-]?[0-9]+|\.[0-9]+|[eE][+-]?[0-9]+)$`)
)

// Coercer converts raw literals against a schema. One coercer serves
// one conversion run; its collector is injected so parallel runs do
// not share state.
type Coercer struct {
	issues issue.Collector
}

func New(issues issue.Collector) *Coercer {
	if issues == nil {
		issues = issue.Discard{}
	}
	return &Coercer{issues: issues}
}

// Coerce converts one raw literal. col may be nil when no column
// metadata exists for the position; shape inference alone applies then.
func (c *Coercer) Coerce(raw data.RawLiteral, col *schema.Column) data.Value {
	if raw.IsNullKeyword() {
		return c.coerceNull(col)
	}
	if raw.IsQuoted() {
		return c.coerceQuoted(raw, col)
	}
	return c.coerceBare(raw, col)
}

// coerceNull resolves a bare NULL keyword. A NOT NULL column redirects
// to its declared default, or to the type's zero value when none is
// declared. Nullable or unknown columns keep Null.
func (c *Coercer) coerceNull(col *schema.Column) data.Value {
	if col == nil || !col.NotNull {
		return data.Null()
	}
	if col.Default != nil && !col.Default.IsNullKeyword() {
		return c.Coerce(*col.Default, &schema.Column{
			Name: col.Name,
			Type: col.Type,
			Size: col.Size,
		})
	}
	return col.Type.ZeroValue()
}

// coerceQuoted strips and unescapes the literal, then re-parses it when
// the declared type is numeric or boolean.
func (c *Coercer) coerceQuoted(raw data.RawLiteral, col *schema.Column) data.Value {
	text := Unescape(raw.Text, raw.Quote)
	if col == nil {
		return data.Text(text)
	}
	switch col.Type {
	case schema.TypeInt:
		return c.parseInt(text, col)
	case schema.TypeFloat:
		return c.parseFloat(text, col)
	case schema.TypeBool:
		return c.parseBool(text, col)
	case schema.TypeText, schema.TypeDateTime, schema.TypeBinary:
		return data.Text(text)
	default:
		return data.Text(text)
	}
}

// coerceBare handles unquoted literals. A known column type dominates;
// without one the literal's shape decides.
func (c *Coercer) coerceBare(raw data.RawLiteral, col *schema.Column) data.Value {
	text := strings.TrimSpace(raw.Text)
	if col != nil {
		switch col.Type {
		case schema.TypeInt:
			return c.parseInt(text, col)
		case schema.TypeFloat:
			return c.parseFloat(text, col)
		case schema.TypeBool:
			return c.parseBool(text, col)
		case schema.TypeText, schema.TypeDateTime, schema.TypeBinary:
			return data.Text(text)
		}
	}

	if integerRe.MatchString(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return data.Int(n)
		}
	}
	if floatRe.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return data.Float(f)
		}
	}
	if strings.EqualFold(text, "TRUE") {
		return data.Bool(true)
	}
	if strings.EqualFold(text, "FALSE") {
		return data.Bool(false)
	}
	// last-resort numeric parse before falling back to text
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return data.Float(f)
	}
	return data.Text(raw.Text)
}

// parseInt applies the integer grammar. A float-shaped literal under an
// integer column truncates toward zero; anything else degrades to 0.
func (c *Coercer) parseInt(text string, col *schema.Column) data.Value {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return data.Int(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return data.Int(int64(f))
	}
	c.fallback(col, text, "integer")
	return data.Int(0)
}

func (c *Coercer) parseFloat(text string, col *schema.Column) data.Value {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return data.Float(f)
	}
	c.fallback(col, text, "float")
	return data.Float(0)
}

// parseBool accepts TRUE/FALSE case-insensitively plus 0/1.
func (c *Coercer) parseBool(text string, col *schema.Column) data.Value {
	switch {
	case strings.EqualFold(text, "TRUE"), text == "1":
		return data.Bool(true)
	case strings.EqualFold(text, "FALSE"), text == "0":
		return data.Bool(false)
	}
	c.fallback(col, text, "boolean")
	return data.Bool(false)
}

func (c *Coercer) fallback(col *schema.Column, text, grammar string) {
	name := "<no column>"
	if col != nil {
		name = col.Name
	}
	c.issues.Report(issue.Issue{
		Kind:    issue.KindCoercion,
		Message: fmt.Sprintf("column %s: %q does not match %s grammar, using default", name, text, grammar),
		Offset:  -1,
		Context: text,
	})
}
