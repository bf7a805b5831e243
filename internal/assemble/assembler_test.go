package assemble

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/dumpconv/internal/convert"
	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

func testColumns() []schema.Column {
	return []schema.Column{
		{Name: "id", Type: schema.TypeInt, NotNull: true},
		{Name: "label", Type: schema.TypeText},
		{Name: "price", Type: schema.TypeFloat},
	}
}

func TestAssembleBasic(t *testing.T) {
	issues := issue.NewList()
	co := convert.New(issues)

	tuples := [][]data.RawLiteral{
		{{Text: "1"}, {Text: "apple", Quote: '\''}, {Text: "2.5"}},
		{{Text: "2"}, {Text: "NULL"}, {Text: "NULL"}},
	}

	dump := Assemble("items", testColumns(), tuples, co, issues)

	assert.Equal(t, "items", dump.TableName)
	require.Len(t, dump.Records, 2)
	assert.Equal(t, 2, dump.Stats.TotalTuples)
	assert.Equal(t, 2, dump.Stats.AcceptedRecords)
	assert.Equal(t, 0, dump.Stats.RejectedRecords)

	v, ok := dump.Records[0].Get("id")
	require.True(t, ok)
	assert.True(t, data.Int(1).Equal(v))

	v, _ = dump.Records[0].Get("price")
	assert.True(t, data.Float(2.5).Equal(v))

	// nullable columns keep NULL
	v, _ = dump.Records[1].Get("label")
	assert.True(t, v.IsNull())
}

func TestAssembleRejectsArityMismatch(t *testing.T) {
	issues := issue.NewList()
	co := convert.New(issues)

	tuples := [][]data.RawLiteral{
		{{Text: "1"}, {Text: "a", Quote: '\''}, {Text: "0.5"}},
		{{Text: "2"}, {Text: "b", Quote: '\''}, {Text: "0.5"}, {Text: "extra"}},
		{{Text: "3"}, {Text: "c", Quote: '\''}},
	}

	dump := Assemble("items", testColumns(), tuples, co, issues)

	require.Len(t, dump.Records, 1)
	assert.Equal(t, 3, dump.Stats.TotalTuples)
	assert.Equal(t, 1, dump.Stats.AcceptedRecords)
	assert.Equal(t, 2, dump.Stats.RejectedRecords)
	assert.Equal(t, dump.Stats.TotalTuples, dump.Stats.AcceptedRecords+dump.Stats.RejectedRecords)
	assert.Equal(t, 2, issues.Count(issue.KindCountMismatch))
}

func TestAssemblePreservesInputOrder(t *testing.T) {
	co := convert.New(nil)
	cols := []schema.Column{{Name: "n", Type: schema.TypeInt}}

	var tuples [][]data.RawLiteral
	for i := 0; i < 50; i++ {
		tuples = append(tuples, []data.RawLiteral{{Text: strconv.Itoa(i)}})
	}

	dump := Assemble("seq", cols, tuples, co, issue.NewList())
	require.Len(t, dump.Records, 50)
	for i, rec := range dump.Records {
		v, _ := rec.Get("n")
		assert.Equal(t, int64(i), v.Int())
	}
}

func TestAssembleSpecScenario(t *testing.T) {
	// one INTEGER NOT NULL and one TEXT column; the tuple carries a
	// doubled-quote literal
	cols := []schema.Column{
		{Name: "id", Type: schema.TypeInt, NotNull: true},
		{Name: "label", Type: schema.TypeText},
	}
	tuples := [][]data.RawLiteral{
		{{Text: "1"}, {Text: "He said ''hi''", Quote: '\''}},
	}

	dump := Assemble("t", cols, tuples, convert.New(nil), issue.NewList())
	require.Len(t, dump.Records, 1)

	id, _ := dump.Records[0].Get("id")
	assert.True(t, data.Int(1).Equal(id))
	label, _ := dump.Records[0].Get("label")
	assert.True(t, data.Text("He said 'hi'").Equal(label))
}
