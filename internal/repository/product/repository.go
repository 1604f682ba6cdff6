package product

import (
	"context"

	"tomato-harvest/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
