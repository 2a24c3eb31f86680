package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"respush/internal/domain/catalog"

	"github.com/xuri/excelize/v2"
)

var _ catalog.TableReader = (*Reader)(nil)

// Reader reads spreadsheet catalogs. .csv files are parsed as CSV;
// everything else is opened as an Excel workbook.
type Reader struct {
	sheet string
}

// NewReader creates a reader. An empty sheet name selects the first sheet of a workbook.
func NewReader(sheet string) *Reader {
	return &Reader{sheet: sheet}
}

// ReadTable returns every row of the table as raw, unformatted strings.
func (r *Reader) ReadTable(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	return r.readWorkbook(path)
}

func (r *Reader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	name := r.sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = sheets[0]
	}

	// Raw values keep cells as stored: no number or date formatting
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	// Strip a UTF-8 BOM so the first header matches
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}
