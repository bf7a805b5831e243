package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

func TestCoerceShapeInference(t *testing.T) {
	co := New(nil)

	tests := []struct {
		name string
		raw  data.RawLiteral
		want data.Value
	}{
		{"bare integer", data.RawLiteral{Text: "42"}, data.Int(42)},
		{"negative integer", data.RawLiteral{Text: "-7"}, data.Int(-7)},
		{"decimal", data.RawLiteral{Text: "3.14"}, data.Float(3.14)},
		{"exponent", data.RawLiteral{Text: "2.5e10"}, data.Float(2.5e10)},
		{"negative decimal", data.RawLiteral{Text: "-0.5"}, data.Float(-0.5)},
		{"bare exponent", data.RawLiteral{Text: "1e3"}, data.Float(1000)},
		{"true keyword", data.RawLiteral{Text: "TRUE"}, data.Bool(true)},
		{"false keyword", data.RawLiteral{Text: "false"}, data.Bool(false)},
		{"null keyword", data.RawLiteral{Text: "null"}, data.Null()},
		{"bareword falls back to text", data.RawLiteral{Text: "pending"}, data.Text("pending")},
		{"quoted text", data.RawLiteral{Text: "hello", Quote: '\''}, data.Text("hello")},
		{"quoted number stays text", data.RawLiteral{Text: "42", Quote: '\''}, data.Text("42")},
		{"quoted NULL is text", data.RawLiteral{Text: "NULL", Quote: '\''}, data.Text("NULL")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := co.Coerce(tt.raw, nil)
			assert.True(t, tt.want.Equal(got), "Coerce(%v) = %v, want %v", tt.raw, got, tt.want)
		})
	}
}

func TestCoerceDeclaredTypeDominates(t *testing.T) {
	co := New(nil)

	intCol := &schema.Column{Name: "id", Type: schema.TypeInt}
	floatCol := &schema.Column{Name: "rate", Type: schema.TypeFloat}
	textCol := &schema.Column{Name: "label", Type: schema.TypeText}
	boolCol := &schema.Column{Name: "flag", Type: schema.TypeBool}

	// integer column accepts quoted digits
	assert.True(t, data.Int(7).Equal(co.Coerce(data.RawLiteral{Text: "7", Quote: '\''}, intCol)))
	// float column promotes bare integers
	assert.True(t, data.Float(7).Equal(co.Coerce(data.RawLiteral{Text: "7"}, floatCol)))
	// text column keeps bare digits as text
	assert.True(t, data.Text("7").Equal(co.Coerce(data.RawLiteral{Text: "7"}, textCol)))
	// boolean column parses quoted keyword
	assert.True(t, data.Bool(true).Equal(co.Coerce(data.RawLiteral{Text: "true", Quote: '\''}, boolCol)))
	// boolean column accepts 0/1
	assert.True(t, data.Bool(true).Equal(co.Coerce(data.RawLiteral{Text: "1"}, boolCol)))
	// integer column truncates float-shaped literals toward zero
	assert.True(t, data.Int(7).Equal(co.Coerce(data.RawLiteral{Text: "7.9", Quote: '\''}, intCol)))
	assert.True(t, data.Int(-7).Equal(co.Coerce(data.RawLiteral{Text: "-7.9"}, intCol)))
}

func TestCoerceDegradesWithIssue(t *testing.T) {
	issues := issue.NewList()
	co := New(issues)

	intCol := &schema.Column{Name: "id", Type: schema.TypeInt}
	boolCol := &schema.Column{Name: "flag", Type: schema.TypeBool}

	got := co.Coerce(data.RawLiteral{Text: "garbage", Quote: '\''}, intCol)
	assert.True(t, data.Int(0).Equal(got))

	got = co.Coerce(data.RawLiteral{Text: "maybe"}, boolCol)
	assert.True(t, data.Bool(false).Equal(got))

	assert.Equal(t, 2, issues.Count(issue.KindCoercion))
}

func TestCoerceNullBoundary(t *testing.T) {
	co := New(nil)
	null := data.RawLiteral{Text: "NULL"}

	// nullable column keeps Null
	nullable := &schema.Column{Name: "x", Type: schema.TypeInt}
	assert.True(t, co.Coerce(null, nullable).IsNull())

	// NOT NULL with a declared default coerces the default
	withDefault := &schema.Column{
		Name: "flag", Type: schema.TypeBool, NotNull: true,
		Default: &data.RawLiteral{Text: "FALSE"},
	}
	got := co.Coerce(null, withDefault)
	require.Equal(t, data.KindBool, got.Kind())
	assert.False(t, got.Bool())

	// NOT NULL without a default yields the type-appropriate zero
	tests := []struct {
		typ  schema.DeclaredType
		want data.Value
	}{
		{schema.TypeInt, data.Int(0)},
		{schema.TypeFloat, data.Float(0)},
		{schema.TypeBool, data.Bool(false)},
		{schema.TypeText, data.Text("")},
		{schema.TypeDateTime, data.Text("")},
		{schema.TypeBinary, data.Text("")},
	}
	for _, tt := range tests {
		col := &schema.Column{Name: "x", Type: tt.typ, NotNull: true}
		got := co.Coerce(null, col)
		assert.True(t, tt.want.Equal(got), "type %s: got %v", tt.typ, got)
	}

	// a NULL default on a NOT NULL column cannot recurse forever
	degenerate := &schema.Column{
		Name: "x", Type: schema.TypeInt, NotNull: true,
		Default: &data.RawLiteral{Text: "NULL"},
	}
	assert.True(t, data.Int(0).Equal(co.Coerce(null, degenerate)))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		quote byte
		want  string
	}{
		{"doubled single quote", "He said ''hi''", '\'', "He said 'hi'"},
		{"backslash escapes", `a\'b\"c\\d`, '\'', `a'b"c\d`},
		{"control escapes", `line1\nline2\tend\r`, '\'', "line1\nline2\tend\r"},
		{"mixed conventions", `it''s a \'test\'`, '\'', "it's a 'test'"},
		{"unknown escape kept", `a\qb`, '\'', `a\qb`},
		{"escaped backslash before n", `a\\n`, '\'', `a\n`},
		{"doubled double quote", `say ""hi""`, '"', `say "hi"`},
		{"no quote no doubling", "a''b", 0, "a''b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unescape(tt.in, tt.quote))
		})
	}
}

func TestCoerceNonFinite(t *testing.T) {
	co := New(nil)
	floatCol := &schema.Column{Name: "v", Type: schema.TypeFloat}

	got := co.Coerce(data.RawLiteral{Text: "Inf"}, floatCol)
	require.Equal(t, data.KindFloat, got.Kind())
	assert.True(t, math.IsInf(got.Float(), 1))
}
