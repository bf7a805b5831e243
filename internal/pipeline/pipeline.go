// Package pipeline runs the whole conversion for one input: parse the
// schema, extract tuples, coerce and assemble, serialize, and
// optionally export. Each run is a pure function of its input and
// options; batch conversion just runs independent invocations, so no
// locking discipline is needed beyond serializing the progress
// callback.
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/dumpconv/internal/assemble"
	"github.com/leengari/dumpconv/internal/convert"
	"github.com/leengari/dumpconv/internal/domain/issue"
	"github.com/leengari/dumpconv/internal/domain/schema"
	"github.com/leengari/dumpconv/internal/export"
	"github.com/leengari/dumpconv/internal/luagen"
	"github.com/leengari/dumpconv/internal/parser"
)

// Options configure one conversion run. The zero value parses and
// serializes in pretty mode without writing anything.
type Options struct {
	Serialize luagen.Options
	Export    *export.Options // nil: do not write the artifact
	Observer  Observer        // nil: no lifecycle events
	Workers   int             // batch parallelism, min 1
}

// Result is the outcome of one successful (or export-failed) run. On
// an export failure Result still carries the dump and artifact; the
// data is not lost.
type Result struct {
	RunID    string
	Dump     *schema.TableDump
	Artifact string
	Export   *export.Result
	Issues   []issue.Issue
}

// Convert runs the full pipeline over one input text. A missing schema
// statement or an input with zero tuples is a hard failure for that
// input; everything else degrades and is reported in Result.Issues.
func Convert(input string, opts Options) (*Result, error) {
	runID := uuid.New().String()
	issues := issue.NewList()
	start := time.Now()

	emit(opts.Observer, Event{Type: EventParseStart, RunID: runID, Timestamp: start})

	sch, err := parser.ParseSchema(input, issues)
	if err != nil {
		emit(opts.Observer, Event{Type: EventConvertFailure, RunID: runID, Timestamp: time.Now(), Data: err.Error()})
		return nil, err
	}

	tuples := parser.ExtractTuples(input, issues)
	if len(tuples) == 0 {
		emit(opts.Observer, Event{Type: EventConvertFailure, RunID: runID, Table: sch.TableName, Timestamp: time.Now(), Data: parser.ErrNoTuples.Error()})
		return nil, fmt.Errorf("table %s: %w", sch.TableName, parser.ErrNoTuples)
	}

	emit(opts.Observer, Event{
		Type: EventParseEnd, RunID: runID, Table: sch.TableName, Timestamp: time.Now(),
		Data: map[string]int{"columns": len(sch.Columns), "tuples": len(tuples)},
	})

	co := convert.New(issues)
	dump := assemble.Assemble(sch.TableName, sch.Columns, tuples, co, issues)

	emit(opts.Observer, Event{
		Type: EventAssembleEnd, RunID: runID, Table: dump.TableName, Timestamp: time.Now(),
		Data: dump.Stats,
	})

	artifact := luagen.Serialize(dump, opts.Serialize)

	emit(opts.Observer, Event{
		Type: EventSerializeEnd, RunID: runID, Table: dump.TableName, Timestamp: time.Now(),
		Data: map[string]int{"bytes": len(artifact)},
	})

	res := &Result{
		RunID:    runID,
		Dump:     dump,
		Artifact: artifact,
		Issues:   issues.All(),
	}

	if opts.Export != nil {
		exp, err := export.Export(dump, artifact, *opts.Export)
		if err != nil {
			issues.Report(issue.Issue{Kind: issue.KindExport, Message: err.Error(), Offset: -1})
			res.Issues = issues.All()
			emit(opts.Observer, Event{Type: EventConvertFailure, RunID: runID, Table: dump.TableName, Timestamp: time.Now(), Data: err.Error()})
			return res, err
		}
		res.Export = exp
		emit(opts.Observer, Event{
			Type: EventExportEnd, RunID: runID, Table: dump.TableName, Timestamp: time.Now(),
			Data: exp.Path,
		})
	}

	return res, nil
}

func emit(o Observer, e Event) {
	if o != nil {
		o.OnEvent(e)
	}
}

// Input is one named dump text for batch conversion. Name is only used
// for reporting; the table name comes from the schema statement.
type Input struct {
	Name string
	Text string
}

// ProgressFunc is called synchronously once per completed input.
type ProgressFunc func(index, total int, tableName string)

// BatchItem pairs one input with its outcome.
type BatchItem struct {
	Name   string
	Result *Result
	Err    error
}

// ConvertBatch converts every input with up to opts.Workers parallel
// invocations. Runs share nothing, so parallelism needs no locks; the
// progress callback is serialized by a mutex. Results keep input order.
func ConvertBatch(inputs []Input, opts Options, progress ProgressFunc) []BatchItem {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	items := make([]BatchItem, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := Convert(in.Text, opts)
			items[i] = BatchItem{Name: in.Name, Result: res, Err: err}

			tableName := ""
			if res != nil {
				tableName = res.Dump.TableName
			}
			if progress != nil {
				mu.Lock()
				progress(i, len(inputs), tableName)
				mu.Unlock()
			}
		}(i, in)
	}
	wg.Wait()

	return items
}
