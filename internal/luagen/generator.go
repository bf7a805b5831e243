// Package luagen serializes an assembled TableDump into a Lua
// ModuleScript. Output is deterministic: fields are emitted in
// lexicographically sorted name order, text uses a fixed escape table,
// and the non-finite floats Lua has no literal for are written as the
// symbolic tokens math.huge, -math.huge, and 0/0. NULL fields are
// written as a shared sentinel table so that reloading the module
// preserves field presence.
package luagen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

// Options selects the output mode. Compact drops inter-line whitespace
// in the records block; Pretty (the default) indents one record per
// line. Both modes are semantically identical.
type Options struct {
	Compact bool
	// GeneratedAt stamps the metadata block. Zero means time.Now in
	// UTC; tests pin it for byte-stable output.
	GeneratedAt time.Time
}

// luaKeywords cannot appear as bare table keys.
var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true,
	"elseif": true, "end": true, "false": true, "for": true,
	"function": true, "goto": true, "if": true, "in": true,
	"local": true, "nil": true, "not": true, "or": true,
	"repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// Serialize renders the dump as a single self-contained ModuleScript
// ending in `return M`.
func Serialize(dump *schema.TableDump, opts Options) string {
	at := opts.GeneratedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var b strings.Builder

	fmt.Fprintf(&b, "-- %s dataset, generated by dumpconv\n", dump.TableName)
	b.WriteString("local M = {}\n\n")
	b.WriteString("M.NULL = setmetatable({}, { __tostring = function() return \"NULL\" end })\n\n")

	b.WriteString("M.Meta = {\n")
	fmt.Fprintf(&b, "\ttableName = \"%s\",\n", Escape(dump.TableName))
	fmt.Fprintf(&b, "\trecordCount = %d,\n", len(dump.Records))
	fmt.Fprintf(&b, "\tcolumnCount = %d,\n", len(dump.Columns))
	fmt.Fprintf(&b, "\tgeneratedAt = %q,\n", at.Format(time.RFC3339))
	b.WriteString("}\n\n")

	writeRecords(&b, dump.Records, opts.Compact)
	b.WriteString("\n")
	writeAccessors(&b)

	b.WriteString("return M\n")
	return b.String()
}

func writeRecords(b *strings.Builder, records []*data.Record, compact bool) {
	if compact {
		b.WriteString("M.Records = {")
		for i, rec := range records {
			if i > 0 {
				b.WriteString(",")
			}
			writeRecord(b, rec, compact)
		}
		b.WriteString("}\n")
		return
	}

	b.WriteString("M.Records = {\n")
	for _, rec := range records {
		b.WriteString("\t")
		writeRecord(b, rec, compact)
		b.WriteString(",\n")
	}
	b.WriteString("}\n")
}

func writeRecord(b *strings.Builder, rec *data.Record, compact bool) {
	sep := ", "
	if compact {
		sep = ","
	}
	b.WriteString("{")
	if !compact {
		b.WriteString(" ")
	}
	for i, name := range rec.SortedNames() {
		if i > 0 {
			b.WriteString(sep)
		}
		v, _ := rec.Get(name)
		b.WriteString(fieldKey(name))
		if compact {
			b.WriteString("=")
		} else {
			b.WriteString(" = ")
		}
		b.WriteString(formatValue(v))
	}
	if !compact {
		b.WriteString(" ")
	}
	b.WriteString("}")
}

// fieldKey emits a bare key when the name is a valid, non-reserved Lua
// identifier and a bracketed string key otherwise.
func fieldKey(name string) string {
	if isLuaIdentifier(name) && !luaKeywords[name] {
		return name
	}
	return `["` + Escape(name) + `"]`
}

func isLuaIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		alpha := ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		if !alpha && (i == 0 || ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

func formatValue(v data.Value) string {
	switch v.Kind() {
	case data.KindNull:
		return "M.NULL"
	case data.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case data.KindFloat:
		return formatFloat(v.Float())
	case data.KindText:
		return `"` + Escape(v.Text()) + `"`
	case data.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return "M.NULL"
	}
}

// formatFloat writes non-finite values as the symbolic tokens the
// target format requires; Lua has no literal for them.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "math.huge"
	case math.IsInf(f, -1):
		return "-math.huge"
	case math.IsNaN(f):
		return "0/0"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func writeAccessors(b *strings.Builder) {
	b.WriteString(`function M.GetRecord(index)
	return M.Records[index]
end

function M.GetRecordCount()
	return #M.Records
end

function M.FindRecords(field, value)
	local found = {}
	for _, record in ipairs(M.Records) do
		if record[field] == value then
			found[#found + 1] = record
		end
	end
	return found
end

`)
}
