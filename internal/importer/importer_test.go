package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,price,imageUrl,unused
1,Heirloom Tomatoes,Juicy heirloom,4.99,https://example.com/1.jpg,x
,,,,,
2,Roma Tomatoes,"Firm, meaty",$3.49,https://example.com/2.jpg,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}
	first := repo.items[0]
	if first.ID != "1" || first.Name != "Heirloom Tomatoes" || !first.Price.Equal(decimal.RequireFromString("4.99")) || first.ImageURL != "https://example.com/1.jpg" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	second := repo.items[1]
	if second.Description != "Firm, meaty" || !second.Price.Equal(decimal.RequireFromString("3.49")) || second.Position != 2 {
		t.Fatalf("unexpected product data: %+v", second)
	}
}

func TestParse_ColumnOrderAndHeaderCase(t *testing.T) {
	csvData := "Price,Image_URL,Name,ID\n5.49,b.jpg,Beefsteak Tomatoes,4\n"
	products, err := Parse(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 1 || products[0].ID != "4" || products[0].ImageURL != "b.jpg" || products[0].Position != 1 {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "id,name\n1,x\n",
		"bad price":      "id,name,price\n1,x,abc\n",
		"negative price": "id,name,price\n1,x,-1\n",
		"missing name":   "id,name,price\n1,,2\n",
		"id with slash":  "id,name,price\nred/green,x,2\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Parse(strings.NewReader("id,name,price\n1,x,-1\n")); !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestCSVImporter_NoWritesOnInvalidFile(t *testing.T) {
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader("id,name,price\n1,a,1.00\n2,b,oops\n"), repo)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no writes, got %d", len(repo.items))
	}
}

func TestCSVImporter_RepoError(t *testing.T) {
	repo := &stubProductRepo{err: errors.New("boom")}
	imp := NewCSVImporter(strings.NewReader("id,name,price\n1,a,1.00\n"), repo)
	count, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "boom") || count != 0 {
		t.Fatalf("expected repo error, got %d %v", count, err)
	}
}
