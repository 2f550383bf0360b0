package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"category-admin/internal/domain"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// CSVImporter reads category rows and inserts/updates them by slug.
type CSVImporter struct {
	reader *csv.Reader
	writer CategoryWriter
}

func NewCSVImporter(r io.Reader, w CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, writer: w}
}

type csvRow struct {
	Line        int
	Slug        string
	Name        string
	Parent      string
	Description string
	Sort        int
}

// Run upserts categories in file order. A parent must appear before its
// children; the count of imported rows is returned.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column \"name\"")
	}

	ids := make(map[string]string)
	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		c := domain.Category{
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			Sort:        row.Sort,
		}
		if row.Parent != "" {
			parentID, ok := ids[row.Parent]
			if !ok {
				return imported, fmt.Errorf("line %d: unknown parent %q", row.Line, row.Parent)
			}
			c.ParentID = parentID
		}

		saved, err := i.writer.Upsert(ctx, c)
		if err != nil {
			return imported, fmt.Errorf("line %d: upsert category %q: %w", row.Line, row.Name, err)
		}
		ids[saved.Slug] = saved.ID
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	row := &csvRow{
		Line:        line,
		Slug:        pick(record, index, "slug"),
		Name:        pick(record, index, "name"),
		Parent:      pick(record, index, "parent"),
		Description: pick(record, index, "description"),
	}
	if row.Name == "" && row.Slug == "" {
		return nil, nil
	}
	if sortStr := pick(record, index, "sort"); sortStr != "" {
		n, err := strconv.Atoi(sortStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid sort %q", line, sortStr)
		}
		row.Sort = n
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
