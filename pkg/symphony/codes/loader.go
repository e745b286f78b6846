package codes

import (
	"bufio"
	"io"
	"os"

	"github.com/sdsymphony/hist2json/pkg/histerrors"
	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// Load reads a pipe-delimited code-table file ("TAG|Human Name|", one entry
// per line) from path and merges every entry into table.
func Load(path string, table *Table) error {
	f, err := os.Open(path)
	if err != nil {
		return histerrors.Wrap(err, histerrors.ErrorTypeConfig, "failed to open code table").
			WithDetail("path", path)
	}
	defer f.Close()

	if err := LoadFrom(f, table); err != nil {
		return histerrors.Wrap(err, histerrors.ErrorTypeConfig, "failed to parse code table").
			WithDetail("path", path)
	}
	return nil
}

// LoadFrom parses r as a pipe-delimited code-table stream and merges every
// entry into table. Blank lines are skipped; a line with no '|' is
// considered malformed and skipped rather than aborting the load, since a
// single corrupt entry should not prevent the rest of the table loading.
func LoadFrom(r io.Reader, table *Table) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tag, value, ok := splitEntry(line)
		if !ok {
			continue
		}
		table.Merge(tag, value)
	}
	return scanner.Err()
}

// splitEntry parses a "TAG|Human Name|" line into its tag and value.
func splitEntry(line string) (tag, value string, ok bool) {
	parts := stringpool.Split(line, "|")
	if len(parts) < 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
