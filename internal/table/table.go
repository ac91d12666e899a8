// Package table holds the tabular structures the client trades with the
// remote service: uploaded datasets and configuration CSVs on the way in,
// solution artifacts on the way out.
package table

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Table is an in-memory CSV: a header row plus string records. Parsing keeps
// every column and row of the source body; no schema is enforced beyond the
// rectangular shape the csv reader requires.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Parse reads a CSV body, treating the first record as the header.
func Parse(body []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(body))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing csv body")
	}
	if len(records) == 0 {
		return nil, errors.New("csv body has no header row")
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// Load reads and parses a CSV file from disk.
func Load(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(content)
}

func (t *Table) NumRows() int { return len(t.Rows) }

func (t *Table) NumCols() int { return len(t.Columns) }

func (t *Table) columnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, errors.Newf("no column %q in table", name)
}

// Column returns the raw string values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Floats parses the named column as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(raw))
	for i, s := range raw {
		values[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q row %d", name, i)
		}
	}
	return values, nil
}

// MarshalCSV encodes the table back to CSV text, header first.
func (t *Table) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.Columns); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
