// Package xlsx imports and exports the catalog as an Excel workbook.
//
// The workbook has a Products and a Categories sheet and an optional
// Reviews sheet. The first row of every sheet is a header; columns are
// matched by name, so their order is free and unknown columns are
// ignored. List cells (images, colors, sizes) are separated by "|".
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var _ port.CatalogLoader = Loader{}

const (
	ProductsSheet   = "Products"
	CategoriesSheet = "Categories"
	ReviewsSheet    = "Reviews"

	listSep = "|"
)

var (
	ErrMissingSheet  = errors.New("missing sheet")
	ErrMissingColumn = errors.New("missing column")
)

var (
	productColumns = []string{
		"id", "slug", "name", "description", "price", "original_price",
		"category", "brand", "rating", "reviews_count", "stock_status",
		"images", "colors", "sizes", "featured", "on_sale",
		"sale_end_date", "created_at",
	}
	categoryColumns = []string{"id", "name", "slug", "image_url"}
	reviewColumns   = []string{
		"id", "product_id", "user_name", "rating", "comment", "date",
	}

	requiredProductColumns  = []string{"id", "slug", "name", "price"}
	requiredCategoryColumns = []string{"id", "name", "slug"}
	requiredReviewColumns   = []string{"id", "product_id", "rating"}
)

// Loader reads the catalog from a workbook file on every call.
type Loader struct {
	path string
}

func New(path string) Loader {
	return Loader{path: path}
}

func (l Loader) LoadCatalog(ctx context.Context) (domain.CatalogData, error) {
	const op = "xlsx.LoadCatalog"

	if err := ctx.Err(); err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	data, err := parse(f)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("catalog imported",
		"op", op,
		"path", l.path,
		"products", len(data.Products),
		"categories", len(data.Categories),
		"reviews", len(data.Reviews),
	)
	return data, nil
}

// Read parses a workbook from r.
func Read(r io.Reader) (domain.CatalogData, error) {
	const op = "xlsx.Read"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	data, err := parse(f)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func parse(f *excelize.File) (domain.CatalogData, error) {
	var data domain.CatalogData

	products, err := readSheet(f, ProductsSheet, requiredProductColumns, true, parseProduct)
	if err != nil {
		return data, err
	}
	categories, err := readSheet(f, CategoriesSheet, requiredCategoryColumns, true, parseCategory)
	if err != nil {
		return data, err
	}
	reviews, err := readSheet(f, ReviewsSheet, requiredReviewColumns, false, parseReview)
	if err != nil {
		return data, err
	}

	data.Products = products
	data.Categories = categories
	data.Reviews = reviews
	return data, nil
}

// A row gives access to the cells of one sheet row by header name.
type row struct {
	cells   []string
	columns map[string]int
}

func (r row) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) empty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readSheet[T any](
	f *excelize.File,
	sheet string,
	required []string,
	mandatory bool,
	parseFn func(row) (T, error),
) ([]T, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		if mandatory {
			return nil, fmt.Errorf("%w: %s", ErrMissingSheet, sheet)
		}
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: header row", sheet, ErrMissingColumn)
	}

	columns := mapColumns(rows[0])
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", sheet, ErrMissingColumn, name)
		}
	}

	var (
		out  []T
		errs []error
	)
	for i, cells := range rows[1:] {
		r := row{cells: cells, columns: columns}
		if r.empty() {
			continue
		}
		v, err := parseFn(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s row %d: %w", sheet, i+2, err))
			continue
		}
		out = append(out, v)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if _, dup := columns[name]; name != "" && !dup {
			columns[name] = i
		}
	}
	return columns
}

func parseProduct(r row) (domain.Product, error) {
	p := domain.Product{
		ID:          r.get("id"),
		Slug:        r.get("slug"),
		Name:        r.get("name"),
		Description: r.get("description"),
		Category:    r.get("category"),
		Brand:       r.get("brand"),
		StockStatus: domain.StockStatus(r.get("stock_status")),
		Images:      splitList(r.get("images")),
	}
	if p.ID == "" || p.Slug == "" || p.Name == "" {
		return p, errors.New("id, slug and name are required")
	}
	if p.StockStatus == "" {
		p.StockStatus = domain.InStock
	}
	if !p.StockStatus.Valid() {
		return p, fmt.Errorf("unknown stock status %q", p.StockStatus)
	}

	var err error
	if p.Price, err = decimal.NewFromString(r.get("price")); err != nil {
		return p, fmt.Errorf("price: %w", err)
	}
	if p.Price.IsNegative() {
		return p, errors.New("price: negative")
	}
	if s := r.get("original_price"); s != "" {
		op, err := decimal.NewFromString(s)
		if err != nil {
			return p, fmt.Errorf("original_price: %w", err)
		}
		p.OriginalPrice = &op
	}
	if p.Rating, err = parseFloat(r.get("rating")); err != nil {
		return p, fmt.Errorf("rating: %w", err)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return p, errors.New("rating: out of range")
	}
	if p.ReviewsCount, err = parseInt(r.get("reviews_count")); err != nil {
		return p, fmt.Errorf("reviews_count: %w", err)
	}
	if p.IsFeatured, err = parseBool(r.get("featured")); err != nil {
		return p, fmt.Errorf("featured: %w", err)
	}
	if p.IsOnSale, err = parseBool(r.get("on_sale")); err != nil {
		return p, fmt.Errorf("on_sale: %w", err)
	}
	if s := r.get("sale_end_date"); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return p, fmt.Errorf("sale_end_date: %w", err)
		}
		p.SaleEndDate = &t
	}
	if s := r.get("created_at"); s != "" {
		if p.CreatedAt, err = parseTime(s); err != nil {
			return p, fmt.Errorf("created_at: %w", err)
		}
	}

	colors, sizes := splitList(r.get("colors")), splitList(r.get("sizes"))
	if colors != nil || sizes != nil {
		p.Variants = &domain.ProductVariants{Colors: colors, Sizes: sizes}
	}
	return p, nil
}

func parseCategory(r row) (domain.Category, error) {
	c := domain.Category{
		ID:       r.get("id"),
		Name:     r.get("name"),
		Slug:     r.get("slug"),
		ImageURL: r.get("image_url"),
	}
	if c.ID == "" || c.Name == "" || c.Slug == "" {
		return c, errors.New("id, name and slug are required")
	}
	return c, nil
}

func parseReview(r row) (domain.Review, error) {
	rv := domain.Review{
		ID:        r.get("id"),
		ProductID: r.get("product_id"),
		UserName:  r.get("user_name"),
		Comment:   r.get("comment"),
	}
	if rv.ID == "" || rv.ProductID == "" {
		return rv, errors.New("id and product_id are required")
	}

	var err error
	if rv.Rating, err = parseInt(r.get("rating")); err != nil {
		return rv, fmt.Errorf("rating: %w", err)
	}
	if rv.Rating < 0 || rv.Rating > 5 {
		return rv, errors.New("rating: out of range")
	}
	if s := r.get("date"); s != "" {
		if rv.Date, err = parseTime(s); err != nil {
			return rv, fmt.Errorf("date: %w", err)
		}
	}
	return rv, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
