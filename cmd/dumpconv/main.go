// Command dumpconv converts SQL dump files into Lua dataset modules.
// Each input file holds one table: a CREATE TABLE statement plus its
// batched INSERT statements. The output is a self-contained
// ModuleScript exposing the records and a small query surface.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/leengari/dumpconv/internal/export"
	"github.com/leengari/dumpconv/internal/logging"
	"github.com/leengari/dumpconv/internal/luagen"
	"github.com/leengari/dumpconv/internal/pipeline"
)

const version = "0.2.0"

// CLI defines the command-line interface for dumpconv.
var CLI struct {
	Debug bool `help:"Enable debug logging"`

	Convert ConvertCmd `cmd:"" help:"Convert dump files to Lua dataset modules"`
	Inspect InspectCmd `cmd:"" help:"Parse a dump and report schema, stats, and issues without writing"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts one or more dump files and writes artifacts.
type ConvertCmd struct {
	Paths    []string `arg:"" name:"path" help:"SQL dump files to convert" type:"existingfile"`
	OutDir   string   `name:"out-dir" short:"o" default:"." help:"Directory for generated modules"`
	Compact  bool     `help:"Emit compact output without inter-line whitespace"`
	Compress bool     `help:"Compress generated modules with xz"`
	Workers  int      `default:"1" help:"Parallel conversions"`
}

func (c *ConvertCmd) Run() error {
	inputs := make([]pipeline.Input, 0, len(c.Paths))
	for _, p := range c.Paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		inputs = append(inputs, pipeline.Input{Name: p, Text: string(text)})
	}

	opts := pipeline.Options{
		Serialize: luagen.Options{Compact: c.Compact},
		Export:    &export.Options{Dir: c.OutDir, Compress: c.Compress},
		Observer:  pipeline.NewLoggingObserver(slog.Default()),
		Workers:   c.Workers,
	}

	items := pipeline.ConvertBatch(inputs, opts, func(index, total int, tableName string) {
		fmt.Printf("[%d/%d] %s\n", index+1, total, tableName)
	})

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			slog.Error("conversion failed",
				slog.String("input", item.Name),
				slog.Any("error", item.Err),
			)
			continue
		}
		res := item.Result
		slog.Info("converted",
			slog.String("input", item.Name),
			slog.String("table", res.Dump.TableName),
			slog.String("script", res.Export.ScriptName),
			slog.String("path", res.Export.Path),
			slog.Int("accepted", res.Dump.Stats.AcceptedRecords),
			slog.Int("rejected", res.Dump.Stats.RejectedRecords),
			slog.Int("issues", len(res.Issues)),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(items))
	}
	return nil
}

// InspectCmd parses one dump and prints what the converter would build.
type InspectCmd struct {
	Path string `arg:"" help:"SQL dump file to inspect" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	text, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Path, err)
	}

	res, err := pipeline.Convert(string(text), pipeline.Options{})
	if err != nil {
		return fmt.Errorf("inspect %s: %w", c.Path, err)
	}

	dump := res.Dump
	name := export.ScriptName(dump.TableName)
	fmt.Printf("table:   %s\n", dump.TableName)
	fmt.Printf("script:  %s (local %s)\n", name, export.LocalAlias(name))
	fmt.Printf("columns: %d\n", len(dump.Columns))
	for _, col := range dump.Columns {
		flags := ""
		if col.NotNull {
			flags += " NOT NULL"
		}
		if col.AutoIncrement {
			flags += " AUTO_INCREMENT"
		}
		if col.Default != nil {
			flags += fmt.Sprintf(" DEFAULT %s", col.Default.Text)
		}
		fmt.Printf("  %-24s %s%s\n", col.Name, col.Type, flags)
	}
	fmt.Printf("tuples:  %d total, %d accepted, %d rejected\n",
		dump.Stats.TotalTuples, dump.Stats.AcceptedRecords, dump.Stats.RejectedRecords)

	if len(res.Issues) > 0 {
		fmt.Printf("issues:  %d\n", len(res.Issues))
		for _, is := range res.Issues {
			fmt.Printf("  %s\n", is)
		}
	}
	return nil
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("dumpconv %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dumpconv"),
		kong.Description("Convert SQL dump files into Lua dataset modules."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if CLI.Debug {
		level = slog.LevelDebug
	}
	_, closeFn := logging.SetupLogger(level)
	defer closeFn()

	ctx.FatalIfErrorf(ctx.Run())
}
