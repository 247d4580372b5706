package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/romilkhanna/turing-backend/models"
)

const productSummarySelect = `
	SELECT p.product_id, p.name, p.description, p.price, p.discounted_price, COALESCE(p.thumbnail, '')
	FROM product p`

// categoryOrderColumns whitelists the ORDER BY targets for category listings.
var categoryOrderColumns = map[string]string{
	"category_id": "category_id",
	"name":        "name",
}

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanProductSummary(row rowScanner) (models.ProductSummary, error) {
	var p models.ProductSummary
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice, &p.Thumbnail)
	return p, err
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.Image, &p.Image2, &p.Thumbnail, &p.Display)
	return p, err
}

func scanDepartment(row rowScanner) (models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description)
	return d, err
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.DepartmentID, &c.Name, &c.Description)
	return c, err
}

func scanAttribute(row rowScanner) (models.Attribute, error) {
	var a models.Attribute
	err := row.Scan(&a.ID, &a.Name)
	return a, err
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func (r *CatalogRepository) CountProducts(ctx context.Context) (int, error) {
	n, err := queryCount(ctx, r.db, "SELECT COUNT(*) FROM product")
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, offset, limit int) ([]models.ProductSummary, error) {
	rows, err := queryRows(ctx, r.db, scanProductSummary,
		productSummarySelect+" ORDER BY p.product_id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return rows, nil
}

// searchClause builds a LIKE filter over name and description. With allWords
// every word must match, otherwise any of them.
func searchClause(words []string, allWords bool) (string, []any) {
	parts := make([]string, 0, len(words))
	args := make([]any, 0, 2*len(words))
	for _, w := range words {
		pattern := "%" + escapeLike(w) + "%"
		parts = append(parts, "(p.name LIKE ? OR p.description LIKE ?)")
		args = append(args, pattern, pattern)
	}
	joiner := " OR "
	if allWords {
		joiner = " AND "
	}
	return " WHERE " + strings.Join(parts, joiner), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *CatalogRepository) CountSearch(ctx context.Context, words []string, allWords bool) (int, error) {
	where, args := searchClause(words, allWords)
	n, err := queryCount(ctx, r.db, "SELECT COUNT(*) FROM product p"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("count search results: %w", err)
	}
	return n, nil
}

func (r *CatalogRepository) SearchProducts(ctx context.Context, words []string, allWords bool, offset, limit int) ([]models.ProductSummary, error) {
	where, args := searchClause(words, allWords)
	args = append(args, limit, offset)
	rows, err := queryRows(ctx, r.db, scanProductSummary,
		productSummarySelect+where+" ORDER BY p.product_id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return rows, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	p, err := queryOne(ctx, r.db, scanProduct, `
		SELECT product_id, name, description, price, discounted_price,
		       COALESCE(image, ''), COALESCE(image_2, ''), COALESCE(thumbnail, ''), display
		FROM product WHERE product_id = ?`, productID)
	if err != nil {
		return nil, notFoundOr(err, "get product %d", productID)
	}
	return &p, nil
}

func (r *CatalogRepository) CountProductsInCategory(ctx context.Context, categoryID int) (int, error) {
	n, err := queryCount(ctx, r.db, "SELECT COUNT(*) FROM product_category WHERE category_id = ?", categoryID)
	if err != nil {
		return 0, fmt.Errorf("count products in category %d: %w", categoryID, err)
	}
	return n, nil
}

func (r *CatalogRepository) ProductsInCategory(ctx context.Context, categoryID, offset, limit int) ([]models.ProductSummary, error) {
	rows, err := queryRows(ctx, r.db, scanProductSummary, productSummarySelect+`
		JOIN product_category pc ON pc.product_id = p.product_id
		WHERE pc.category_id = ?
		ORDER BY p.product_id LIMIT ? OFFSET ?`, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products in category %d: %w", categoryID, err)
	}
	return rows, nil
}

func (r *CatalogRepository) CountProductsInDepartment(ctx context.Context, departmentID int) (int, error) {
	n, err := queryCount(ctx, r.db, `
		SELECT COUNT(DISTINCT pc.product_id)
		FROM product_category pc
		JOIN category c ON c.category_id = pc.category_id
		WHERE c.department_id = ?`, departmentID)
	if err != nil {
		return 0, fmt.Errorf("count products in department %d: %w", departmentID, err)
	}
	return n, nil
}

func (r *CatalogRepository) ProductsInDepartment(ctx context.Context, departmentID, offset, limit int) ([]models.ProductSummary, error) {
	rows, err := queryRows(ctx, r.db, scanProductSummary, productSummarySelect+`
		WHERE p.product_id IN (
			SELECT pc.product_id
			FROM product_category pc
			JOIN category c ON c.category_id = pc.category_id
			WHERE c.department_id = ?)
		ORDER BY p.product_id LIMIT ? OFFSET ?`, departmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products in department %d: %w", departmentID, err)
	}
	return rows, nil
}

func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := queryRows(ctx, r.db, scanDepartment,
		"SELECT department_id, name, COALESCE(description, '') FROM department ORDER BY department_id")
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return rows, nil
}

func (r *CatalogRepository) GetDepartment(ctx context.Context, departmentID int) (*models.Department, error) {
	d, err := queryOne(ctx, r.db, scanDepartment,
		"SELECT department_id, name, COALESCE(description, '') FROM department WHERE department_id = ?", departmentID)
	if err != nil {
		return nil, notFoundOr(err, "get department %d", departmentID)
	}
	return &d, nil
}

func (r *CatalogRepository) CountCategories(ctx context.Context) (int, error) {
	n, err := queryCount(ctx, r.db, "SELECT COUNT(*) FROM category")
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// ListCategories orders by orderBy when it is a known column, else by id.
func (r *CatalogRepository) ListCategories(ctx context.Context, orderBy string, offset, limit int) ([]models.Category, error) {
	column, ok := categoryOrderColumns[orderBy]
	if !ok {
		column = "category_id"
	}
	rows, err := queryRows(ctx, r.db, scanCategory,
		"SELECT category_id, department_id, name, COALESCE(description, '') FROM category ORDER BY "+column+" LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, categoryID int) (*models.Category, error) {
	c, err := queryOne(ctx, r.db, scanCategory,
		"SELECT category_id, department_id, name, COALESCE(description, '') FROM category WHERE category_id = ?", categoryID)
	if err != nil {
		return nil, notFoundOr(err, "get category %d", categoryID)
	}
	return &c, nil
}

func (r *CatalogRepository) CategoriesInDepartment(ctx context.Context, departmentID int) ([]models.Category, error) {
	rows, err := queryRows(ctx, r.db, scanCategory, `
		SELECT category_id, department_id, name, COALESCE(description, '')
		FROM category WHERE department_id = ? ORDER BY category_id`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list categories in department %d: %w", departmentID, err)
	}
	return rows, nil
}

func (r *CatalogRepository) CategoriesOfProduct(ctx context.Context, productID int) ([]models.ProductCategory, error) {
	rows, err := queryRows(ctx, r.db, func(row rowScanner) (models.ProductCategory, error) {
		var pc models.ProductCategory
		err := row.Scan(&pc.CategoryID, &pc.DepartmentID, &pc.Name)
		return pc, err
	}, `
		SELECT c.category_id, c.department_id, c.name
		FROM category c
		JOIN product_category pc ON pc.category_id = c.category_id
		WHERE pc.product_id = ?
		ORDER BY c.category_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list categories of product %d: %w", productID, err)
	}
	return rows, nil
}

func (r *CatalogRepository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	rows, err := queryRows(ctx, r.db, scanAttribute, "SELECT attribute_id, name FROM attribute ORDER BY attribute_id")
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return rows, nil
}

func (r *CatalogRepository) GetAttribute(ctx context.Context, attributeID int) (*models.Attribute, error) {
	a, err := queryOne(ctx, r.db, scanAttribute,
		"SELECT attribute_id, name FROM attribute WHERE attribute_id = ?", attributeID)
	if err != nil {
		return nil, notFoundOr(err, "get attribute %d", attributeID)
	}
	return &a, nil
}

func (r *CatalogRepository) AttributeValues(ctx context.Context, attributeID int) ([]models.AttributeValue, error) {
	rows, err := queryRows(ctx, r.db, func(row rowScanner) (models.AttributeValue, error) {
		var v models.AttributeValue
		err := row.Scan(&v.ID, &v.Value)
		return v, err
	}, `
		SELECT attribute_value_id, value
		FROM attribute_value WHERE attribute_id = ? ORDER BY attribute_value_id`, attributeID)
	if err != nil {
		return nil, fmt.Errorf("list values of attribute %d: %w", attributeID, err)
	}
	return rows, nil
}

func (r *CatalogRepository) ProductAttributes(ctx context.Context, productID int) ([]models.ProductAttribute, error) {
	rows, err := queryRows(ctx, r.db, func(row rowScanner) (models.ProductAttribute, error) {
		var pa models.ProductAttribute
		err := row.Scan(&pa.AttributeName, &pa.AttributeValueID, &pa.AttributeValue)
		return pa, err
	}, `
		SELECT a.name, av.attribute_value_id, av.value
		FROM attribute_value av
		JOIN attribute a ON a.attribute_id = av.attribute_id
		JOIN product_attribute pa ON pa.attribute_value_id = av.attribute_value_id
		WHERE pa.product_id = ?
		ORDER BY a.name, av.attribute_value_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list attributes of product %d: %w", productID, err)
	}
	return rows, nil
}
