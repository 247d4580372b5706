package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/cache"
	"github.com/romilkhanna/turing-backend/models"
)

const (
	DefaultPageLimit         = 20
	MaxPageLimit             = 100
	MaxPage                  = 100000
	DefaultDescriptionLength = 200
)

type CatalogStore interface {
	CountProducts(ctx context.Context) (int, error)
	ListProducts(ctx context.Context, offset, limit int) ([]models.ProductSummary, error)
	CountSearch(ctx context.Context, words []string, allWords bool) (int, error)
	SearchProducts(ctx context.Context, words []string, allWords bool, offset, limit int) ([]models.ProductSummary, error)
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
	CountProductsInCategory(ctx context.Context, categoryID int) (int, error)
	ProductsInCategory(ctx context.Context, categoryID, offset, limit int) ([]models.ProductSummary, error)
	CountProductsInDepartment(ctx context.Context, departmentID int) (int, error)
	ProductsInDepartment(ctx context.Context, departmentID, offset, limit int) ([]models.ProductSummary, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, departmentID int) (*models.Department, error)
	CountCategories(ctx context.Context) (int, error)
	ListCategories(ctx context.Context, orderBy string, offset, limit int) ([]models.Category, error)
	GetCategory(ctx context.Context, categoryID int) (*models.Category, error)
	CategoriesInDepartment(ctx context.Context, departmentID int) ([]models.Category, error)
	CategoriesOfProduct(ctx context.Context, productID int) ([]models.ProductCategory, error)
	ListAttributes(ctx context.Context) ([]models.Attribute, error)
	GetAttribute(ctx context.Context, attributeID int) (*models.Attribute, error)
	AttributeValues(ctx context.Context, attributeID int) ([]models.AttributeValue, error)
	ProductAttributes(ctx context.Context, productID int) ([]models.ProductAttribute, error)
}

// PageQuery is a listing request. Zero values take the defaults.
type PageQuery struct {
	Page              int
	Limit             int
	DescriptionLength int
}

func (q PageQuery) normalize() (PageQuery, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.DescriptionLength == 0 {
		q.DescriptionLength = DefaultDescriptionLength
	}
	switch {
	case q.Page < 1 || q.Page > MaxPage:
		return q, apperrors.Validation("page must be between 1 and 100000")
	case q.Limit < 1 || q.Limit > MaxPageLimit:
		return q, apperrors.Validation("limit must be between 1 and 100")
	case q.DescriptionLength < 1:
		return q, apperrors.Validation("description_length must be positive")
	}
	return q, nil
}

func (q PageQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

type CatalogService struct {
	store CatalogStore
	cache cache.ProductCache
	log   *zap.Logger
}

func NewCatalogService(store CatalogStore, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: orNop(log)}
}

// WithCache puts a product cache in front of GetProduct.
func (s *CatalogService) WithCache(c cache.ProductCache) *CatalogService {
	s.cache = c
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func truncateAll(rows []models.ProductSummary, n int) []models.ProductSummary {
	for i := range rows {
		rows[i].Description = truncate(rows[i].Description, n)
	}
	return rows
}

func (s *CatalogService) productPage(
	ctx context.Context,
	q PageQuery,
	op string,
	count func() (int, error),
	list func(offset, limit int) ([]models.ProductSummary, error),
) (*models.Page[models.ProductSummary], error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	total, err := count()
	if err != nil {
		return nil, storeError(s.log, op, err, "")
	}
	rows, err := list(q.offset(), q.Limit)
	if err != nil {
		return nil, storeError(s.log, op, err, "")
	}
	return &models.Page[models.ProductSummary]{Count: total, Rows: truncateAll(rows, q.DescriptionLength)}, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, q PageQuery) (*models.Page[models.ProductSummary], error) {
	return s.productPage(ctx, q, "list products",
		func() (int, error) { return s.store.CountProducts(ctx) },
		func(offset, limit int) ([]models.ProductSummary, error) { return s.store.ListProducts(ctx, offset, limit) })
}

// SearchProducts matches any of the words in name or description, or all
// of them when allWords is set.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, allWords bool, q PageQuery) (*models.Page[models.ProductSummary], error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil, apperrors.Validation("query_string is required")
	}
	return s.productPage(ctx, q, "search products",
		func() (int, error) { return s.store.CountSearch(ctx, words, allWords) },
		func(offset, limit int) ([]models.ProductSummary, error) {
			return s.store.SearchProducts(ctx, words, allWords, offset, limit)
		})
}

func (s *CatalogService) ProductsInCategory(ctx context.Context, categoryID int, q PageQuery) (*models.Page[models.ProductSummary], error) {
	return s.productPage(ctx, q, "list products in category",
		func() (int, error) { return s.store.CountProductsInCategory(ctx, categoryID) },
		func(offset, limit int) ([]models.ProductSummary, error) {
			return s.store.ProductsInCategory(ctx, categoryID, offset, limit)
		})
}

func (s *CatalogService) ProductsInDepartment(ctx context.Context, departmentID int, q PageQuery) (*models.Page[models.ProductSummary], error) {
	return s.productPage(ctx, q, "list products in department",
		func() (int, error) { return s.store.CountProductsInDepartment(ctx, departmentID) },
		func(offset, limit int) ([]models.ProductSummary, error) {
			return s.store.ProductsInDepartment(ctx, departmentID, offset, limit)
		})
}

// GetProduct reads through the cache when one is configured. Cache failures
// only cost a database round trip.
func (s *CatalogService) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	if s.cache != nil {
		product, err := s.cache.Get(ctx, productID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("product cache read failed", zap.Int("product_id", productID), zap.Error(err))
		}
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeError(s.log, "get product", err, "product not found")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.log.Warn("product cache write failed", zap.Int("product_id", productID), zap.Error(err))
		}
	}
	return product, nil
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.store.ListDepartments(ctx)
	if err != nil {
		return nil, storeError(s.log, "list departments", err, "")
	}
	return rows, nil
}

func (s *CatalogService) GetDepartment(ctx context.Context, departmentID int) (*models.Department, error) {
	d, err := s.store.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, storeError(s.log, "get department", err, "department not found")
	}
	return d, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, q PageQuery, orderBy string) (*models.Page[models.Category], error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountCategories(ctx)
	if err != nil {
		return nil, storeError(s.log, "count categories", err, "")
	}
	rows, err := s.store.ListCategories(ctx, orderBy, q.offset(), q.Limit)
	if err != nil {
		return nil, storeError(s.log, "list categories", err, "")
	}
	return &models.Page[models.Category]{Count: total, Rows: rows}, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, categoryID int) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, storeError(s.log, "get category", err, "category not found")
	}
	return c, nil
}

func (s *CatalogService) CategoriesInDepartment(ctx context.Context, departmentID int) ([]models.Category, error) {
	rows, err := s.store.CategoriesInDepartment(ctx, departmentID)
	if err != nil {
		return nil, storeError(s.log, "list categories in department", err, "")
	}
	return rows, nil
}

func (s *CatalogService) CategoryOfProduct(ctx context.Context, productID int) ([]models.ProductCategory, error) {
	rows, err := s.store.CategoriesOfProduct(ctx, productID)
	if err != nil {
		return nil, storeError(s.log, "list categories of product", err, "")
	}
	return rows, nil
}

func (s *CatalogService) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	rows, err := s.store.ListAttributes(ctx)
	if err != nil {
		return nil, storeError(s.log, "list attributes", err, "")
	}
	return rows, nil
}

func (s *CatalogService) GetAttribute(ctx context.Context, attributeID int) (*models.Attribute, error) {
	a, err := s.store.GetAttribute(ctx, attributeID)
	if err != nil {
		return nil, storeError(s.log, "get attribute", err, "attribute not found")
	}
	return a, nil
}

func (s *CatalogService) AttributeValues(ctx context.Context, attributeID int) ([]models.AttributeValue, error) {
	rows, err := s.store.AttributeValues(ctx, attributeID)
	if err != nil {
		return nil, storeError(s.log, "list attribute values", err, "")
	}
	return rows, nil
}

func (s *CatalogService) ProductAttributes(ctx context.Context, productID int) ([]models.ProductAttribute, error) {
	rows, err := s.store.ProductAttributes(ctx, productID)
	if err != nil {
		return nil, storeError(s.log, "list product attributes", err, "")
	}
	return rows, nil
}
