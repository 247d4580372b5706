package cache

import (
	"context"
	"errors"

	"github.com/romilkhanna/turing-backend/models"
)

// ProductCache holds product detail reads in front of MySQL.
type ProductCache interface {
	Get(ctx context.Context, productID int) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID int) error
}

var ErrCacheMiss = errors.New("cache miss")
