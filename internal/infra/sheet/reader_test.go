package sheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	target := sheet
	if target == "" {
		target = "Sheet1"
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(target, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadTable_Workbook(t *testing.T) {
	path := writeWorkbook(t, "", [][]any{
		{"资源类型", "资源名称", "资源链接"},
		{"Books", "Go", "https://go.dev"},
		{"Books", nil, "https://x"},
	})

	rows, err := NewReader("").ReadTable(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"资源类型", "资源名称", "资源链接"}, rows[0])
	assert.Equal(t, []string{"Books", "Go", "https://go.dev"}, rows[1])
	assert.Equal(t, "", rows[2][1])
}

func TestReadTable_RawNumbers(t *testing.T) {
	path := writeWorkbook(t, "", [][]any{
		{"资源类型", "资源名称", "资源链接"},
		{"Books", 0.1, "https://x"},
	})

	rows, err := NewReader("").ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "0.1", rows[1][1])
}

func TestReadTable_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Catalog", [][]any{
		{"资源类型", "资源名称", "资源链接"},
		{"Videos", "Intro", "https://v"},
	})

	rows, err := NewReader("Catalog").ReadTable(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Videos", rows[1][0])

	_, err = NewReader("Nope").ReadTable(context.Background(), path)
	assert.Error(t, err)
}

func TestReadTable_CorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := NewReader("").ReadTable(context.Background(), path)
	assert.Error(t, err)
}

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "\uFEFF资源类型,资源名称,资源链接\nBooks,\"Go, the book\",https://go.dev\nVideos,Intro\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := NewReader("").ReadTable(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "资源类型", rows[0][0])
	assert.Equal(t, "Go, the book", rows[1][1])
	assert.Equal(t, []string{"Videos", "Intro"}, rows[2])
}

func TestReadTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader("").ReadTable(ctx, "whatever.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}
