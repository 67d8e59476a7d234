package table

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Generous per-line buffer for datasets carrying long contexts or
// conversation transcripts.
const maxLineBytes = 16 << 20 // 16 MiB

// ReadJSONL reads a table from newline-delimited JSON, one object per row.
// Blank lines are skipped.
func ReadJSONL(r io.Reader) (Table, error) {
	var records []map[string]any

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("read dataset: %w", err)
	}

	return FromRecords(records), nil
}

// WriteJSONL writes the table as newline-delimited JSON, one object per row,
// in row order.
func WriteJSONL(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	for i, rec := range t.Records() {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
