package export

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// maxScriptNameLen caps generated script names so the host storage
// never rejects them.
const maxScriptNameLen = 50

// luaReserved are the keywords a generated script name may not collide
// with; a colliding name gets the _Table suffix.
var luaReserved = map[string]bool{
	"and": true, "break": true, "do": true, "else": true,
	"elseif": true, "end": true, "false": true, "for": true,
	"function": true, "goto": true, "if": true, "in": true,
	"local": true, "nil": true, "not": true, "or": true,
	"repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// ScriptName sanitizes a table name into a loadable script identifier.
// The rules are a hard contract with the host: strip everything outside
// [A-Za-z0-9_], never start with a digit, suffix reserved keywords with
// _Table, cap the length.
func ScriptName(tableName string) string {
	var b strings.Builder
	for i := 0; i < len(tableName); i++ {
		ch := tableName[i]
		switch {
		case ch == '_',
			'a' <= ch && ch <= 'z',
			'A' <= ch && ch <= 'Z',
			'0' <= ch && ch <= '9':
			b.WriteByte(ch)
		}
	}
	name := b.String()

	if name == "" {
		name = "Table"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "T" + name
	}
	if luaReserved[name] {
		name += "_Table"
	}
	if len(name) > maxScriptNameLen {
		name = name[:maxScriptNameLen]
	}
	return name
}

// LocalAlias camelizes a script name into the variable name suggested
// in the artifact's usage header.
func LocalAlias(scriptName string) string {
	alias := inflect.Camelize(scriptName)
	if alias == "" {
		return "Dataset"
	}
	return alias
}
