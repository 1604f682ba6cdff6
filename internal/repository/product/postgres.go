package product

import (
	"context"
	"fmt"

	"tomato-harvest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `id, name, description, price::text, image_url, position, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + `
FROM products
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("product repo: list")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("product repo: list rows")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("product repo: list")
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, image_url, position)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url,
    position = EXCLUDED.position
RETURNING created_at
`
	if !domain.ValidProductID(product.ID) {
		return nil, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidProduct, product.ID)
	}
	if product.Price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price for id %s", domain.ErrInvalidProduct, product.ID)
	}
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.Price.StringFixed(2),
		product.ImageURL,
		product.Position,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("id", product.ID).Msg("product repo: upsert")
		return nil, err
	}
	r.logger.Debug().Str("id", res.ID).Msg("product repo: upserted")
	return &res, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.ImageURL, &p.Position, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse price for %s: %w", p.ID, err)
	}
	p.Price = parsed
	return p, nil
}
