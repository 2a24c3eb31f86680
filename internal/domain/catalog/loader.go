package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"respush/internal/common"
)

// TableReader defines the contract for reading a tabular file into string cells.
// Implementations live in infra/sheet/.
type TableReader interface {
	// ReadTable returns every row of the table, header included. Cells are raw strings.
	ReadTable(ctx context.Context, path string) ([][]string, error)
}

// Load reads the catalog at path, validates each row and groups the survivors by type.
//
// Rows with a blank type, a blank link, or a link that does not start with
// http:// or https:// are dropped silently; their count is available via Index.Dropped.
func Load(ctx context.Context, reader TableReader, path string, cols Columns) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewNotFoundError(path)
		}
		return nil, common.NewFormatError(path, err)
	}
	if info.IsDir() {
		return nil, common.NewNotFoundError(path)
	}

	table, err := reader.ReadTable(ctx, path)
	if err != nil {
		return nil, common.NewFormatError(path, err)
	}

	// Skip blank rows above the header
	for len(table) > 0 && isBlank(table[0]) {
		table = table[1:]
	}
	if len(table) == 0 {
		return nil, common.NewSchemaError(required(cols), nil)
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(h)
	}

	typeCol, nameCol, linkCol, err := locate(header, cols)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(table)-1)
	dropped := 0
	for _, raw := range table[1:] {
		row, ok := parseRow(raw, typeCol, nameCol, linkCol)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	idx := NewIndex(rows, dropped)
	slog.Debug("catalog loaded",
		"path", path,
		"rows", len(table)-1,
		"valid", len(rows),
		"dropped", dropped,
		"types", idx.Len(),
	)
	return idx, nil
}

// locate resolves the column positions, reporting every missing column at once.
func locate(header []string, cols Columns) (typeCol, nameCol, linkCol int, err error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	want := required(cols)
	var missing []string
	for _, c := range want {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return 0, 0, 0, common.NewSchemaError(missing, header)
	}

	return pos[want[0]], pos[want[1]], pos[want[2]], nil
}

func required(cols Columns) []string {
	return []string{
		strings.TrimSpace(cols.Type),
		strings.TrimSpace(cols.Name),
		strings.TrimSpace(cols.Link),
	}
}

// parseRow applies the retention rules to one raw table row.
func parseRow(raw []string, typeCol, nameCol, linkCol int) (Row, bool) {
	resType := strings.TrimSpace(cell(raw, typeCol))
	link := strings.TrimSpace(cell(raw, linkCol))
	if resType == "" || !IsLink(link) {
		return Row{}, false
	}

	name := strings.TrimSpace(cell(raw, nameCol))
	if name == "" {
		name = DefaultName
	}

	return Row{Type: resType, Name: name, Link: link}, true
}

// IsLink reports whether s starts with http:// or https://. The match is case-sensitive.
func IsLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// cell returns raw[i], or "" when the row is shorter than the header.
func cell(raw []string, i int) string {
	if i < len(raw) {
		return raw[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for log output.
func (c Columns) String() string {
	return fmt.Sprintf("type=%q name=%q link=%q", c.Type, c.Name, c.Link)
}
