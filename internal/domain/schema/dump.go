package schema

import "github.com/leengari/dumpconv/internal/domain/data"

// ConvertStats counts tuple outcomes for one parse invocation.
// TotalTuples == AcceptedRecords + RejectedRecords always holds.
type ConvertStats struct {
	TotalTuples     int
	AcceptedRecords int
	RejectedRecords int
}

// TableDump is the root artifact of one conversion: the parsed schema,
// the assembled records in input order, and the outcome counts. It owns
// its columns and records; nothing is shared across dumps.
type TableDump struct {
	TableName string
	Columns   []Column
	Records   []*data.Record
	Stats     ConvertStats
}

// Column returns the column definition by name, or nil.
func (d *TableDump) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}
