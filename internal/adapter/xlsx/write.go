package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Write exports data as a workbook that [Read] accepts. All cells are
// written as text so prices keep their scale.
func Write(w io.Writer, data domain.CatalogData) error {
	const op = "xlsx.Write"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, ProductsSheet); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	productRows := make([][]string, len(data.Products))
	for i, p := range data.Products {
		productRows[i] = productRow(p)
	}
	categoryRows := make([][]string, len(data.Categories))
	for i, c := range data.Categories {
		categoryRows[i] = []string{c.ID, c.Name, c.Slug, c.ImageURL}
	}
	reviewRows := make([][]string, len(data.Reviews))
	for i, r := range data.Reviews {
		reviewRows[i] = []string{
			r.ID, r.ProductID, r.UserName, strconv.Itoa(r.Rating),
			r.Comment, formatTime(r.Date),
		}
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{ProductsSheet, productColumns, productRows},
		{CategoriesSheet, categoryColumns, categoryRows},
		{ReviewsSheet, reviewColumns, reviewRows},
	}
	for _, s := range sheets {
		if s.name != ProductsSheet {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
		if err := writeRows(f, s.name, s.header, s.rows); err != nil {
			return fmt.Errorf("%s: %s: %w", op, s.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func writeRows(
	f *excelize.File, sheet string, header []string, rows [][]string,
) error {
	for i, cells := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for j := range cells {
			values[j] = cells[j]
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func productRow(p domain.Product) []string {
	var originalPrice, saleEnd string
	if p.OriginalPrice != nil {
		originalPrice = decimalText(*p.OriginalPrice)
	}
	if p.SaleEndDate != nil {
		saleEnd = formatTime(*p.SaleEndDate)
	}
	var colors, sizes []string
	if p.Variants != nil {
		colors, sizes = p.Variants.Colors, p.Variants.Sizes
	}

	return []string{
		p.ID,
		p.Slug,
		p.Name,
		p.Description,
		decimalText(p.Price),
		originalPrice,
		p.Category,
		p.Brand,
		strconv.FormatFloat(p.Rating, 'f', -1, 64),
		strconv.Itoa(p.ReviewsCount),
		string(p.StockStatus),
		strings.Join(p.Images, listSep),
		strings.Join(colors, listSep),
		strings.Join(sizes, listSep),
		strconv.FormatBool(p.IsFeatured),
		strconv.FormatBool(p.IsOnSale),
		saleEnd,
		formatTime(p.CreatedAt),
	}
}

func decimalText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
