// Package assemble zips coerced tuple fields with column names into
// named records and enforces field-count parity before a record is
// accepted.
package assemble

import (
	"fmt"

	"github.com/leengari/dumpconv/internal/convert"
	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
)

// Assemble coerces every tuple positionally against the columns and
// builds the TableDump. A tuple whose field count differs from the
// column count is rejected whole, never partially accepted. Accepted
// records keep input order; downstream consumers rely on positional
// indices.
func Assemble(tableName string, columns []schema.Column, tuples [][]data.RawLiteral, co *convert.Coercer, issues issue.Collector) *schema.TableDump {
	dump := &schema.TableDump{
		TableName: tableName,
		Columns:   columns,
		Records:   make([]*data.Record, 0, len(tuples)),
	}

	for i, tuple := range tuples {
		dump.Stats.TotalTuples++

		if len(tuple) != len(columns) {
			dump.Stats.RejectedRecords++
			issues.Report(issue.Issue{
				Kind:    issue.KindCountMismatch,
				Message: fmt.Sprintf("tuple %d has %d fields, schema has %d columns", i, len(tuple), len(columns)),
				Offset:  -1,
			})
			continue
		}

		rec := data.NewRecord(len(columns))
		for j, raw := range tuple {
			col := &columns[j]
			rec.Set(col.Name, co.Coerce(raw, col))
		}
		dump.Records = append(dump.Records, rec)
		dump.Stats.AcceptedRecords++
	}

	return dump
}
