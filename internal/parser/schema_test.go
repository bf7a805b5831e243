package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

func TestParseSchemaBasic(t *testing.T) {
	input := "CREATE TABLE `items` (\n" +
		"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
		"  `label` varchar(64) DEFAULT 'none',\n" +
		"  `price` double NOT NULL DEFAULT 0,\n" +
		"  `flag` boolean NOT NULL DEFAULT FALSE,\n" +
		"  `created` datetime DEFAULT NULL,\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  KEY `idx_label` (`label`)\n" +
		");"

	issues := issue.NewList()
	s, err := ParseSchema(input, issues)
	require.NoError(t, err)
	assert.Equal(t, "items", s.TableName)
	require.Len(t, s.Columns, 5)
	assert.Equal(t, 0, issues.Len(), "constraint clauses must be skipped silently")

	id := s.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, schema.TypeInt, id.Type)
	assert.Equal(t, 11, id.Size)
	assert.True(t, id.NotNull)
	assert.True(t, id.AutoIncrement)

	label := s.Columns[1]
	assert.Equal(t, schema.TypeText, label.Type)
	assert.Equal(t, 64, label.Size)
	assert.False(t, label.NotNull)
	require.NotNil(t, label.Default)
	assert.Equal(t, "none", label.Default.Text)
	assert.Equal(t, byte('\''), label.Default.Quote)

	price := s.Columns[2]
	assert.Equal(t, schema.TypeFloat, price.Type)
	require.NotNil(t, price.Default)
	assert.Equal(t, "0", price.Default.Text)

	flag := s.Columns[3]
	assert.Equal(t, schema.TypeBool, flag.Type)
	require.NotNil(t, flag.Default)
	assert.Equal(t, "FALSE", flag.Default.Text)

	created := s.Columns[4]
	assert.Equal(t, schema.TypeDateTime, created.Type)
	require.NotNil(t, created.Default)
	assert.Equal(t, "NULL", created.Default.Text)
}

func TestParseSchemaTableNameForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"backticked", "CREATE TABLE `my_table` (`a` int);", "my_table"},
		{"double quoted", `CREATE TABLE "my_table" ("a" int);`, "my_table"},
		{"bare", "CREATE TABLE my_table (`a` int);", "my_table"},
		{"if not exists", "CREATE TABLE IF NOT EXISTS `t` (`a` int);", "t"},
		{"lowercase keywords", "create table `t` (`a` int);", "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSchema(tt.input, issue.NewList())
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.TableName)
		})
	}
}

func TestParseSchemaMissing(t *testing.T) {
	for _, input := range []string{
		"",
		"INSERT INTO t VALUES (1);",
		"CREATE TABLE",
		"CREATE TABLE t",
	} {
		_, err := ParseSchema(input, issue.NewList())
		assert.ErrorIs(t, err, ErrNoSchema, "input %q", input)
	}
}

func TestParseSchemaSkipsBadClauses(t *testing.T) {
	input := "CREATE TABLE `t` (" +
		"`good` int, " +
		"bare_name int, " + // no quoted name
		"`also_good` text" +
		");"

	issues := issue.NewList()
	s, err := ParseSchema(input, issues)
	require.NoError(t, err)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, "good", s.Columns[0].Name)
	assert.Equal(t, "also_good", s.Columns[1].Name)
	assert.Equal(t, 1, issues.Count(issue.KindSchema))
}

func TestParseSchemaUnbalancedClause(t *testing.T) {
	// an unterminated backtick drops that one clause, not the statement
	input := "CREATE TABLE `t` (`a` int, `b text, `c` int);"
	issues := issue.NewList()
	s, err := ParseSchema(input, issues)
	require.NoError(t, err)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, "a", s.Columns[0].Name)
	assert.Equal(t, "c", s.Columns[1].Name)
	assert.Equal(t, 1, issues.Count(issue.KindStructural))
}

func TestParseSchemaUnbalancedBlock(t *testing.T) {
	// an unterminated value quote swallows the close paren; the whole
	// declaration is unreadable and that is a hard failure
	input := "CREATE TABLE `t` (`a` int, `b` text DEFAULT 'oops);"
	issues := issue.NewList()
	_, err := ParseSchema(input, issues)
	assert.ErrorIs(t, err, ErrNoSchema)
	assert.Equal(t, 1, issues.Count(issue.KindStructural))
}

func TestParseSchemaDuplicateColumnsTolerated(t *testing.T) {
	input := "CREATE TABLE `t` (`a` int, `a` text);"
	issues := issue.NewList()
	s, err := ParseSchema(input, issues)
	require.NoError(t, err)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, schema.TypeInt, s.Columns[0].Type)
	assert.Equal(t, schema.TypeText, s.Columns[1].Type)
	assert.Equal(t, 1, issues.Count(issue.KindSchema))
}
