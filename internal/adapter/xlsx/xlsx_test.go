package xlsx_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/fixtures"
	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func workbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, r := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestRoundTrip(t *testing.T) {
	want, err := fixtures.NewAt(testNow).LoadCatalog(t.Context())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xlsx.Write(&buf, want))

	got, err := xlsx.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		want, err := fixtures.NewAt(testNow).LoadCatalog(t.Context())
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, xlsx.Write(&buf, want))
		path := filepath.Join(t.TempDir(), "catalog.xlsx")
		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		got, err := xlsx.New(path).LoadCatalog(t.Context())
		require.NoError(t, err)
		assert.Len(t, got.Products, len(want.Products))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := xlsx.New(filepath.Join(t.TempDir(), "none.xlsx")).
			LoadCatalog(t.Context())
		assert.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	categories := [][]any{
		{"ID", "Name", "Slug"},
		{"cat1", "Electronics", "electronics"},
	}

	t.Run("HeaderMappedColumns", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"Products": {
				{"Price", "Name", "Unused", "Slug", "ID", "Sizes"},
				{"19.50", "Lamp", "x", "lamp", "p1", "S | M"},
				{},
				{"5", "Mug", "", "mug", "p2"},
			},
			"Categories": categories,
		})

		got, err := xlsx.Read(buf)
		require.NoError(t, err)
		require.Len(t, got.Products, 2)
		lamp := got.Products[0]
		assert.Equal(t, "p1", lamp.ID)
		assert.Equal(t, "19.5", lamp.Price.String())
		require.NotNil(t, lamp.Variants)
		assert.Equal(t, []string{"S", "M"}, lamp.Variants.Sizes)
		assert.Nil(t, got.Products[1].Variants)
		assert.Equal(t, "In Stock", string(got.Products[1].StockStatus))
		assert.Empty(t, got.Reviews)
	})

	t.Run("MissingSheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{"Categories": categories})
		_, err := xlsx.Read(buf)
		assert.ErrorIs(t, err, xlsx.ErrMissingSheet)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"Products":   {{"ID", "Name", "Price"}, {"p1", "Lamp", "1"}},
			"Categories": categories,
		})
		_, err := xlsx.Read(buf)
		assert.ErrorIs(t, err, xlsx.ErrMissingColumn)
	})

	t.Run("InvalidRows", func(t *testing.T) {
		buf := workbook(t, map[string][][]any{
			"Products": {
				{"ID", "Slug", "Name", "Price", "Stock Status"},
				{"p1", "lamp", "Lamp", "cheap"},
				{"p2", "mug", "Mug", "3", "Sold"},
			},
			"Categories": categories,
		})
		_, err := xlsx.Read(buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
		assert.Contains(t, err.Error(), "row 3")
	})
}
