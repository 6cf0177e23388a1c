// Package holiday classifies calendar dates as public holidays.
//
// The lookup is an explicit value handed to the analysis layer, so tests can pass
// Empty() and the CLI can swap in a user-supplied table.
package holiday

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/tcc/pkg/textutil"
)

//go:embed syukujitsu.csv
var embeddedTable []byte

// ErrMalformedDate is returned when a holiday row carries an unparseable date.
var ErrMalformedDate = errors.New("malformed holiday date")

// Accepted date layouts. The Cabinet Office file uses slashes without zero padding.
var dateLayouts = []string{"2006/1/2", "2006-01-02", "2006/01/02"}

const minColumns = 2

// Lookup resolves a calendar date to a holiday name.
type Lookup interface {
	Holiday(date time.Time) (name string, ok bool)
}

type day struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()

	return day{year: y, month: m, day: d}
}

// Table is an in-memory holiday lookup keyed by calendar date.
type Table struct {
	names map[day]string
}

// Empty returns a table with no holidays.
func Empty() *Table {
	return &Table{names: make(map[day]string)}
}

// Default returns the embedded Japanese public-holiday table.
func Default() (*Table, error) {
	return Parse(bytes.NewReader(embeddedTable))
}

// Load reads a holiday table from a CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open holiday table: %w", err)
	}

	defer f.Close()

	return Parse(f)
}

// Parse reads "date,name" rows after a header line. Shift_JIS input is accepted.
func Parse(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read holiday table: %w", err)
	}

	data, _, err := textutil.Decode(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse holiday table: %w", err)
	}

	table := Empty()

	for i, rec := range records {
		if i == 0 || len(rec) < minColumns || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		date, parseErr := parseDate(rec[0])
		if parseErr != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, parseErr)
		}

		table.Add(date, strings.TrimSpace(rec[1]))
	}

	return table, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// Add registers name for the calendar date of t.
func (tb *Table) Add(t time.Time, name string) {
	tb.names[dayOf(t)] = name
}

// Len returns the number of registered holidays.
func (tb *Table) Len() int {
	return len(tb.names)
}

// Holiday implements Lookup. Only the calendar date of date is considered.
func (tb *Table) Holiday(date time.Time) (string, bool) {
	name, ok := tb.names[dayOf(date)]

	return name, ok
}

// Select picks the table for the given settings: none when disabled, the file
// at path when set, the embedded table otherwise.
func Select(path string, disabled bool) (*Table, error) {
	switch {
	case disabled:
		return Empty(), nil
	case path != "":
		return Load(path)
	default:
		return Default()
	}
}
