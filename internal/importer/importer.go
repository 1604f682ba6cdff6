package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files (id,name,description,price,imageUrl)
// and upserts the products.
type CSVImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	return &CSVImporter{reader: r, productRepo: repo}
}

// Run parses the whole file first and only writes when every row is valid.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	products, err := Parse(i.reader)
	if err != nil {
		return 0, err
	}
	imported := 0
	for _, p := range products {
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.ID, err)
		}
		imported++
	}
	return imported, nil
}

// Parse reads catalog rows in file order. Column order is free, unknown
// columns are ignored and blank rows are skipped.
func Parse(r io.Reader) ([]domain.Product, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true

	headers, err := csvr.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var (
		products []domain.Product
		line     = 1
	)
	for {
		record, err := csvr.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}
		p, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Position = len(products) + 1
		products = append(products, p)
	}
	return products, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	id := pick(record, index, "id")
	name := pick(record, index, "name")
	priceStr := pick(record, index, "price")
	if id == "" || name == "" || priceStr == "" {
		return domain.Product{}, fmt.Errorf("%w: id, name and price are required", domain.ErrInvalidProduct)
	}
	if !domain.ValidProductID(id) {
		return domain.Product{}, fmt.Errorf("%w: id %q may only contain letters, digits, '-', '_', '.' and '~'", domain.ErrInvalidProduct, id)
	}
	price, err := decimal.NewFromString(strings.TrimPrefix(priceStr, "$"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: price %q for id %s", domain.ErrInvalidProduct, priceStr, id)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: negative price for id %s", domain.ErrInvalidProduct, id)
	}
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		ImageURL:    pick(record, index, "imageurl"),
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, "_", "")
		idx[key] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
