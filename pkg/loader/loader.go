// Package loader reads TaskChute Cloud TSV exports into model tasks.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/tcc/pkg/model"
	"github.com/Sumatoshi-tech/tcc/pkg/textutil"
)

// Sentinel errors for export parsing.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyInput    = errors.New("empty input")
	ErrBinaryInput   = errors.New("input looks binary")
)

// Header names of a TaskChute Cloud export.
const (
	ColumnID          = "タスクID"
	ColumnDate        = "実行日"
	ColumnName        = "タスク名"
	ColumnEstimate    = "見積時間"
	ColumnActual      = "実績時間"
	ColumnBegin       = "開始時間"
	ColumnEnd         = "終了時間"
	ColumnComment     = "コメント"
	ColumnProjectName = "プロジェクト名"
	ColumnProjectID   = "プロジェクトID"
)

// groupColumns are tried in order for the free-text group tag.
var groupColumns = []string{"モード", "セクション", "グループ"}

var requiredColumns = []string{ColumnDate, ColumnName}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	idPrefix   = "row-"
	tab        = '\t'
)

// Parser converts export rows into tasks.
type Parser struct {
	logger   *slog.Logger
	location *time.Location
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for skipped-row diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLocation sets the time zone timestamps are interpreted in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default(), location: time.UTC}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse reads an export with the default parser.
func Parse(r io.Reader) ([]model.Task, error) {
	return NewParser().Parse(r)
}

// LoadFile reads the export at path with the default parser.
func LoadFile(path string) ([]model.Task, error) {
	return NewParser().LoadFile(path)
}

// LoadFile opens path and parses it.
func (p *Parser) LoadFile(path string) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}

	defer f.Close()

	tasks, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tasks, nil
}

// Parse reads a tab-delimited export with a header row. Rows whose date cannot be
// parsed are skipped; every other field degrades to "absent" when malformed.
func (p *Parser) Parse(r io.Reader) ([]model.Task, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	enc := textutil.DetectEncoding(raw)
	if enc != textutil.EncodingUTF16LE && enc != textutil.EncodingUTF16BE && textutil.IsBinary(raw) {
		return nil, ErrBinaryInput
	}

	data, enc, err := textutil.Decode(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = tab
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := newColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		tasks   []model.Task
		skipped int
	)

	for line := 2; ; line++ {
		rec, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, readErr)
		}

		task, ok := p.task(cols, rec, line)
		if !ok {
			skipped++

			continue
		}

		tasks = append(tasks, task)
	}

	p.logger.Debug("export parsed",
		"encoding", string(enc),
		"size", humanize.Bytes(uint64(len(raw))),
		"tasks", len(tasks),
		"skipped", skipped,
	)

	return tasks, nil
}

func (p *Parser) task(cols columns, rec []string, line int) (model.Task, bool) {
	dateText := cols.get(rec, ColumnDate)

	date, err := time.ParseInLocation(dateLayout, dateText, p.location)
	if err != nil {
		p.logger.Debug("skipping row with unparseable date", "line", line, "date", dateText)

		return model.Task{}, false
	}

	task := model.Task{
		ID:            cols.get(rec, ColumnID),
		Name:          cols.get(rec, ColumnName),
		Comment:       cols.get(rec, ColumnComment),
		Group:         cols.group(rec),
		EstimatedTime: parseClock(cols.get(rec, ColumnEstimate)),
	}

	if task.ID == "" {
		task.ID = fmt.Sprintf("%s%d", idPrefix, line)
	}

	projectName, projectID := cols.get(rec, ColumnProjectName), cols.get(rec, ColumnProjectID)
	if projectName != "" && projectID != "" {
		task.Project = &model.Project{ID: projectID, Name: projectName}
	}

	task.BeginTime, task.EndTime = timestamps(date, cols.get(rec, ColumnBegin), cols.get(rec, ColumnEnd))

	return task, true
}

// timestamps anchors begin and end wall-clock times to date. An end earlier than
// the begin belongs to the next day. When either is missing, both are dropped.
func timestamps(date time.Time, beginText, endText string) (begin, end time.Time) {
	beginOffset, beginOK := clockOffset(beginText)
	endOffset, endOK := clockOffset(endText)

	if !beginOK || !endOK {
		return time.Time{}, time.Time{}
	}

	begin = atClock(date, beginOffset)
	end = atClock(date, endOffset)

	if endOffset < beginOffset {
		end = end.AddDate(0, 0, 1)
	}

	return begin, end
}

// atClock returns the wall-clock time offset past midnight of date in date's zone.
func atClock(date time.Time, offset time.Duration) time.Time {
	y, m, d := date.Date()
	h, mins := int(offset/time.Hour), int(offset%time.Hour/time.Minute)

	return time.Date(y, m, d, h, mins, 0, 0, date.Location())
}

// parseClock reads an "H:MM" duration. Zero and malformed values are absent.
func parseClock(s string) time.Duration {
	d, ok := clockOffset(s)
	if !ok {
		return 0
	}

	return d
}

func clockOffset(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, false
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

type columns struct {
	index    map[string]int
	groupIdx int
}

func newColumns(header []string) (columns, error) {
	cols := columns{index: make(map[string]int, len(header)), groupIdx: -1}

	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols.index[name]; !dup {
			cols.index[name] = i
		}
	}

	var missing []string

	for _, name := range requiredColumns {
		if _, ok := cols.index[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	for _, name := range groupColumns {
		if i, ok := cols.index[name]; ok {
			cols.groupIdx = i

			break
		}
	}

	return cols, nil
}

func (c columns) get(rec []string, name string) string {
	i, ok := c.index[name]
	if !ok {
		return ""
	}

	return field(rec, i)
}

func (c columns) group(rec []string) string {
	if c.groupIdx < 0 {
		return ""
	}

	return field(rec, c.groupIdx)
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}

	return strings.TrimSpace(rec[i])
}
