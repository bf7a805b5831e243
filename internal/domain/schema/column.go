package schema

import (
	"strings"

	"github.com/leengari/dumpconv/internal/domain/data"
)

// DeclaredType is the family a column's SQL type keyword maps to.
// Date/time and binary values carry no calendar or binary semantics
// here; they stay opaque text end to end.
type DeclaredType string

const (
	TypeInt      DeclaredType = "INT"
	TypeFloat    DeclaredType = "FLOAT"
	TypeText     DeclaredType = "TEXT"
	TypeDateTime DeclaredType = "DATETIME"
	TypeBool     DeclaredType = "BOOL"
	TypeBinary   DeclaredType = "BINARY"
)

// typeFamilies maps uppercased SQL type keywords to their family.
var typeFamilies = map[string]DeclaredType{
	"INT":       TypeInt,
	"INTEGER":   TypeInt,
	"TINYINT":   TypeInt,
	"SMALLINT":  TypeInt,
	"MEDIUMINT": TypeInt,
	"BIGINT":    TypeInt,
	"SERIAL":    TypeInt,

	"FLOAT":   TypeFloat,
	"DOUBLE":  TypeFloat,
	"REAL":    TypeFloat,
	"DECIMAL": TypeFloat,
	"NUMERIC": TypeFloat,

	"CHAR":       TypeText,
	"VARCHAR":    TypeText,
	"TEXT":       TypeText,
	"TINYTEXT":   TypeText,
	"MEDIUMTEXT": TypeText,
	"LONGTEXT":   TypeText,
	"ENUM":       TypeText,
	"SET":        TypeText,

	"DATE":      TypeDateTime,
	"DATETIME":  TypeDateTime,
	"TIMESTAMP": TypeDateTime,
	"TIME":      TypeDateTime,
	"YEAR":      TypeDateTime,

	"BOOL":    TypeBool,
	"BOOLEAN": TypeBool,
	"BIT":     TypeBool,

	"BINARY":     TypeBinary,
	"VARBINARY":  TypeBinary,
	"BLOB":       TypeBinary,
	"TINYBLOB":   TypeBinary,
	"MEDIUMBLOB": TypeBinary,
	"LONGBLOB":   TypeBinary,
}

// MapTypeKeyword resolves a SQL type keyword to its declared-type
// family. Unknown keywords fall back to TEXT, which keeps their
// values untouched.
func MapTypeKeyword(keyword string) (DeclaredType, bool) {
	t, ok := typeFamilies[strings.ToUpper(keyword)]
	if !ok {
		return TypeText, false
	}
	return t, true
}

// ZeroValue is the type-appropriate default used when a NOT NULL
// column receives NULL and declares no default.
func (t DeclaredType) ZeroValue() data.Value {
	switch t {
	case TypeInt:
		return data.Int(0)
	case TypeFloat:
		return data.Float(0)
	case TypeBool:
		return data.Bool(false)
	case TypeText, TypeDateTime, TypeBinary:
		return data.Text("")
	default:
		return data.Text("")
	}
}

// Column describes one column extracted from the schema declaration.
// Immutable after parsing.
type Column struct {
	Name          string
	Type          DeclaredType
	Size          int // optional size hint, 0 when absent
	NotNull       bool
	AutoIncrement bool
	Default       *data.RawLiteral // DEFAULT literal, nil when absent
}
