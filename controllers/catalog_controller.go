package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/middlewares"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/services"
)

type CatalogReader interface {
	ListProducts(ctx context.Context, q services.PageQuery) (*models.Page[models.ProductSummary], error)
	SearchProducts(ctx context.Context, query string, allWords bool, q services.PageQuery) (*models.Page[models.ProductSummary], error)
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
	ProductsInCategory(ctx context.Context, categoryID int, q services.PageQuery) (*models.Page[models.ProductSummary], error)
	ProductsInDepartment(ctx context.Context, departmentID int, q services.PageQuery) (*models.Page[models.ProductSummary], error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, departmentID int) (*models.Department, error)
	ListCategories(ctx context.Context, q services.PageQuery, orderBy string) (*models.Page[models.Category], error)
	GetCategory(ctx context.Context, categoryID int) (*models.Category, error)
	CategoriesInDepartment(ctx context.Context, departmentID int) ([]models.Category, error)
	CategoryOfProduct(ctx context.Context, productID int) ([]models.ProductCategory, error)
	ListAttributes(ctx context.Context) ([]models.Attribute, error)
	GetAttribute(ctx context.Context, attributeID int) (*models.Attribute, error)
	AttributeValues(ctx context.Context, attributeID int) ([]models.AttributeValue, error)
	ProductAttributes(ctx context.Context, productID int) ([]models.ProductAttribute, error)
}

type CatalogController struct {
	catalog CatalogReader
}

func NewCatalogController(catalog CatalogReader) *CatalogController {
	return &CatalogController{catalog: catalog}
}

type searchQuery struct {
	pageQuery
	QueryString string `form:"query_string" binding:"required"`
	AllWords    string `form:"all_words" binding:"omitempty,oneof=on off"`
}

type categoryQuery struct {
	pageQuery
	Order string `form:"order" binding:"omitempty,oneof=category_id name"`
}

// respond writes v as 200 or the error envelope.
func respond[T any](c *gin.Context, v T, err error) {
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// byID runs fetch with the named path parameter once it parses.
func byID[T any](c *gin.Context, param string, fetch func(context.Context, int) (T, error)) {
	id, err := pathID(c, param)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	v, err := fetch(c.Request.Context(), id)
	respond(c, v, err)
}

func (cc *CatalogController) ListProducts(c *gin.Context) {
	var q pageQuery
	if err := bindQuery(c, &q); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	page, err := cc.catalog.ListProducts(c.Request.Context(), q.toService())
	respond(c, page, err)
}

func (cc *CatalogController) SearchProducts(c *gin.Context) {
	var q searchQuery
	if err := bindQuery(c, &q); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	page, err := cc.catalog.SearchProducts(c.Request.Context(), q.QueryString, q.AllWords == "on", q.toService())
	respond(c, page, err)
}

func (cc *CatalogController) GetProduct(c *gin.Context) {
	byID(c, "product_id", cc.catalog.GetProduct)
}

func (cc *CatalogController) ProductsInCategory(c *gin.Context) {
	cc.productsIn(c, "category_id", cc.catalog.ProductsInCategory)
}

func (cc *CatalogController) ProductsInDepartment(c *gin.Context) {
	cc.productsIn(c, "department_id", cc.catalog.ProductsInDepartment)
}

func (cc *CatalogController) productsIn(
	c *gin.Context,
	param string,
	list func(context.Context, int, services.PageQuery) (*models.Page[models.ProductSummary], error),
) {
	id, err := pathID(c, param)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	var q pageQuery
	if err := bindQuery(c, &q); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	page, err := list(c.Request.Context(), id, q.toService())
	respond(c, page, err)
}

func (cc *CatalogController) ListDepartments(c *gin.Context) {
	rows, err := cc.catalog.ListDepartments(c.Request.Context())
	respond(c, rows, err)
}

func (cc *CatalogController) GetDepartment(c *gin.Context) {
	byID(c, "department_id", cc.catalog.GetDepartment)
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	var q categoryQuery
	if err := bindQuery(c, &q); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	page, err := cc.catalog.ListCategories(c.Request.Context(), q.toService(), q.Order)
	respond(c, page, err)
}

func (cc *CatalogController) GetCategory(c *gin.Context) {
	byID(c, "category_id", cc.catalog.GetCategory)
}

func (cc *CatalogController) CategoriesInDepartment(c *gin.Context) {
	byID(c, "department_id", cc.catalog.CategoriesInDepartment)
}

func (cc *CatalogController) CategoryOfProduct(c *gin.Context) {
	byID(c, "product_id", cc.catalog.CategoryOfProduct)
}

func (cc *CatalogController) ListAttributes(c *gin.Context) {
	rows, err := cc.catalog.ListAttributes(c.Request.Context())
	respond(c, rows, err)
}

func (cc *CatalogController) GetAttribute(c *gin.Context) {
	byID(c, "attribute_id", cc.catalog.GetAttribute)
}

func (cc *CatalogController) AttributeValues(c *gin.Context) {
	byID(c, "attribute_id", cc.catalog.AttributeValues)
}

func (cc *CatalogController) ProductAttributes(c *gin.Context) {
	byID(c, "product_id", cc.catalog.ProductAttributes)
}
