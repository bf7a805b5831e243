// Package export names and persists generated artifacts. The pipeline
// hands it a TableDump plus the generated text; the table data stays in
// memory if the write fails, so an export error never loses records.
package export

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/leengari/dumpconv/internal/domain/schema"
)

// Options control where and how the artifact is written.
type Options struct {
	Dir      string // destination directory, created if missing
	Compress bool   // write .lua.xz instead of .lua
}

// Result describes one written artifact.
type Result struct {
	ScriptName string
	Path       string
	Digest     string // blake3 hex of the uncompressed artifact text
	Bytes      int    // size written on disk
}

// Error wraps a storage failure. The dump itself is unaffected.
type Error struct {
	ScriptName string
	Path       string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.ScriptName, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Export writes the artifact under its sanitized script name using a
// temp file and an atomic rename.
func Export(dump *schema.TableDump, artifact string, opts Options) (*Result, error) {
	name := ScriptName(dump.TableName)
	alias := LocalAlias(name)

	content := fmt.Sprintf("-- usage: local %s = require(script.Parent.%s)\n%s", alias, name, artifact)

	sum := blake3.Sum256([]byte(content))
	digest := hex.EncodeToString(sum[:])

	fileName := name + ".lua"
	if opts.Compress {
		fileName += ".xz"
	}
	path := filepath.Join(opts.Dir, fileName)

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, &Error{ScriptName: name, Path: path, Err: err}
	}

	payload := []byte(content)
	if opts.Compress {
		compressed, err := compress(payload)
		if err != nil {
			return nil, &Error{ScriptName: name, Path: path, Err: err}
		}
		payload = compressed
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0644); err != nil {
		return nil, &Error{ScriptName: name, Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return nil, &Error{ScriptName: name, Path: path, Err: err}
	}

	slog.Info("artifact exported",
		slog.String("script", name),
		slog.String("path", path),
		slog.String("digest", digest),
		slog.Int("bytes", len(payload)),
	)

	return &Result{
		ScriptName: name,
		Path:       path,
		Digest:     digest,
		Bytes:      len(payload),
	}, nil
}

func compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
