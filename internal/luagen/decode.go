package luagen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leengari/dumpconv/internal/domain/data"
	"github.com/leengari/dumpconv/internal/scan"
)

// ErrNoRecords means the artifact has no M.Records block.
var ErrNoRecords = errors.New("artifact has no records block")

// DecodeRecords parses the M.Records block of a generated artifact
// back into typed records. It reuses the same region-aware scanner as
// the SQL side, with braces as the bracket pair, and exists so callers
// and tests can verify the round-trip property without a Lua runtime.
func DecodeRecords(artifact string) ([]*data.Record, error) {
	marker := strings.Index(artifact, "M.Records")
	if marker < 0 {
		return nil, ErrNoRecords
	}

	sp := scan.NewDelimSplitter('{', '}', ',')
	open := sp.IndexOpen(artifact, marker)
	if open < 0 {
		return nil, ErrNoRecords
	}
	closeIdx, serr := sp.Match(artifact, open)
	if serr != nil {
		return nil, fmt.Errorf("records block: %s", serr.Reason)
	}

	entries, serr := sp.Split(artifact[open+1 : closeIdx])
	if serr != nil {
		return nil, fmt.Errorf("records block: %s", serr.Reason)
	}

	var records []*data.Record
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue // trailing comma
		}
		rec, err := decodeRecord(sp, entry)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(sp *scan.Splitter, entry string) (*data.Record, error) {
	if !strings.HasPrefix(entry, "{") {
		return nil, fmt.Errorf("record entry does not start with '{': %q", entry)
	}
	closeIdx, serr := sp.Match(entry, 0)
	if serr != nil {
		return nil, fmt.Errorf("record entry: %s", serr.Reason)
	}

	fields, serr := sp.Split(entry[1:closeIdx])
	if serr != nil {
		return nil, fmt.Errorf("record fields: %s", serr.Reason)
	}

	rec := data.NewRecord(len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		eq := scan.IndexByteOutsideQuotes(f, 0, '=')
		if eq < 0 {
			return nil, fmt.Errorf("record field has no assignment: %q", f)
		}
		name, err := decodeKey(strings.TrimSpace(f[:eq]))
		if err != nil {
			return nil, err
		}
		value, err := decodeValue(strings.TrimSpace(f[eq+1:]))
		if err != nil {
			return nil, err
		}
		rec.Set(name, value)
	}
	return rec, nil
}

// decodeKey accepts a bare identifier or a bracketed string key.
func decodeKey(key string) (string, error) {
	if strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
		inner := strings.TrimSpace(key[1 : len(key)-1])
		if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
			return UnescapeString(inner[1 : len(inner)-1]), nil
		}
		return "", fmt.Errorf("unsupported bracketed key: %q", key)
	}
	if key == "" {
		return "", errors.New("empty record key")
	}
	return key, nil
}

func decodeValue(text string) (data.Value, error) {
	switch text {
	case "M.NULL":
		return data.Null(), nil
	case "true":
		return data.Bool(true), nil
	case "false":
		return data.Bool(false), nil
	case "math.huge":
		return data.Float(math.Inf(1)), nil
	case "-math.huge":
		return data.Float(math.Inf(-1)), nil
	case "0/0":
		return data.Float(math.NaN()), nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return data.Text(UnescapeString(text[1 : len(text)-1])), nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return data.Int(n), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return data.Float(f), nil
	}
	return data.Value{}, fmt.Errorf("unsupported record value: %q", text)
}
