package controllers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/services"
)

type fakeCheckout struct {
	OrderID int
	Err     error
	Got     services.CheckoutCommand
}

func (f *fakeCheckout) Checkout(_ context.Context, cmd services.CheckoutCommand) (int, error) {
	f.Got = cmd
	return f.OrderID, f.Err
}

// fakeOrders owns order 1 for customer 5 only.
type fakeOrders struct {
	Err error
}

func (f *fakeOrders) ListOrders(_ context.Context, customerID int) ([]models.Order, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if customerID != 5 {
		return []models.Order{}, nil
	}
	return []models.Order{{ID: 1, CustomerID: 5, TotalAmount: decimal.RequireFromString("25.50")}}, nil
}

func (f *fakeOrders) GetOrderDetail(_ context.Context, orderID, customerID int) ([]models.OrderDetailView, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if orderID != 1 || customerID != 5 {
		return nil, apperrors.NotFound("order not found")
	}
	d := models.OrderDetail{ItemID: 1, OrderID: 1, ProductID: 1, ProductName: "Arc d'Triomphe", Quantity: 2, UnitCost: decimal.RequireFromString("10.00")}
	return []models.OrderDetailView{{OrderDetail: d, Subtotal: d.Subtotal()}}, nil
}

func (f *fakeOrders) GetOrderSummary(_ context.Context, orderID, customerID int) (*models.Order, error) {
	if orderID != 1 || customerID != 5 {
		return nil, apperrors.NotFound("order not found")
	}
	return &models.Order{ID: 1, CustomerID: 5, TotalAmount: decimal.RequireFromString("25.50")}, nil
}

type fakeCart struct {
	Item     *models.CartItemView
	Err      error
	Total    decimal.Decimal
	Quantity int
}

func (f *fakeCart) GenerateCartID() string { return "0f8fad5bd9cb469fa16570867728950e" }

func (f *fakeCart) AddItem(_ context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.CartItemView{CartItem: models.CartItem{ItemID: 1, CartID: cartID, ProductID: productID, Attributes: attributes, Quantity: 1}}, nil
}

func (f *fakeCart) GetItems(context.Context, string) ([]models.CartItemView, error) {
	return []models.CartItemView{}, f.Err
}

func (f *fakeCart) UpdateQuantity(_ context.Context, itemID, quantity int) (*models.CartItemView, error) {
	f.Quantity = quantity
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.CartItemView{CartItem: models.CartItem{ItemID: itemID, Quantity: quantity}}, nil
}

func (f *fakeCart) RemoveItem(context.Context, int) error { return f.Err }

func (f *fakeCart) Clear(context.Context, string) error { return f.Err }

func (f *fakeCart) TotalAmount(context.Context, string) (decimal.Decimal, error) {
	return f.Total, f.Err
}

type fakeCustomers struct {
	Err error
}

func (f *fakeCustomers) result(email string) *services.AuthResult {
	return &services.AuthResult{
		Customer:    &models.Customer{ID: 5, Name: "Ann", Email: email, PasswordHash: "$2a$hash"},
		AccessToken: "signed",
		ExpiresIn:   24 * time.Hour,
	}
}

func (f *fakeCustomers) Register(_ context.Context, _, email, _ string) (*services.AuthResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.result(email), nil
}

func (f *fakeCustomers) Login(_ context.Context, email, password string) (*services.AuthResult, error) {
	if password != "s3cret!" {
		return nil, apperrors.Auth(apperrors.ReasonInvalidCredentials, "email or password is invalid")
	}
	return f.result(email), nil
}

func (f *fakeCustomers) GetCustomer(_ context.Context, customerID int) (*models.Customer, error) {
	return &models.Customer{ID: customerID, Name: "Ann"}, f.Err
}

func (f *fakeCustomers) UpdateAddress(_ context.Context, customerID int, a models.Address) (*models.Customer, error) {
	return &models.Customer{ID: customerID, City: a.City, ShippingRegionID: a.ShippingRegionID}, f.Err
}

type fakeCatalog struct {
	LastQuery services.PageQuery
	LastOrder string
	LastAll   bool
}

func (f *fakeCatalog) page() *models.Page[models.ProductSummary] {
	return &models.Page[models.ProductSummary]{Count: 1, Rows: []models.ProductSummary{{ID: 1, Name: "Arc d'Triomphe"}}}
}

func (f *fakeCatalog) ListProducts(_ context.Context, q services.PageQuery) (*models.Page[models.ProductSummary], error) {
	f.LastQuery = q
	return f.page(), nil
}

func (f *fakeCatalog) SearchProducts(_ context.Context, _ string, allWords bool, q services.PageQuery) (*models.Page[models.ProductSummary], error) {
	f.LastQuery, f.LastAll = q, allWords
	return f.page(), nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID int) (*models.Product, error) {
	if productID != 1 {
		return nil, apperrors.NotFound("product not found")
	}
	return &models.Product{ID: 1, Name: "Arc d'Triomphe"}, nil
}

func (f *fakeCatalog) ProductsInCategory(_ context.Context, _ int, q services.PageQuery) (*models.Page[models.ProductSummary], error) {
	f.LastQuery = q
	return f.page(), nil
}

func (f *fakeCatalog) ProductsInDepartment(_ context.Context, _ int, q services.PageQuery) (*models.Page[models.ProductSummary], error) {
	f.LastQuery = q
	return f.page(), nil
}

func (f *fakeCatalog) ListDepartments(context.Context) ([]models.Department, error) {
	return []models.Department{{ID: 1, Name: "Regional"}}, nil
}

func (f *fakeCatalog) GetDepartment(_ context.Context, id int) (*models.Department, error) {
	return &models.Department{ID: id, Name: "Regional"}, nil
}

func (f *fakeCatalog) ListCategories(_ context.Context, q services.PageQuery, orderBy string) (*models.Page[models.Category], error) {
	f.LastQuery, f.LastOrder = q, orderBy
	return &models.Page[models.Category]{Count: 0, Rows: []models.Category{}}, nil
}

func (f *fakeCatalog) GetCategory(_ context.Context, id int) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}

func (f *fakeCatalog) CategoriesInDepartment(context.Context, int) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (f *fakeCatalog) CategoryOfProduct(context.Context, int) ([]models.ProductCategory, error) {
	return []models.ProductCategory{{CategoryID: 1, DepartmentID: 1, Name: "French"}}, nil
}

func (f *fakeCatalog) ListAttributes(context.Context) ([]models.Attribute, error) {
	return []models.Attribute{{ID: 1, Name: "Size"}}, nil
}

func (f *fakeCatalog) GetAttribute(_ context.Context, id int) (*models.Attribute, error) {
	return &models.Attribute{ID: id, Name: "Size"}, nil
}

func (f *fakeCatalog) AttributeValues(context.Context, int) ([]models.AttributeValue, error) {
	return []models.AttributeValue{{ID: 1, Value: "S"}}, nil
}

func (f *fakeCatalog) ProductAttributes(context.Context, int) ([]models.ProductAttribute, error) {
	return []models.ProductAttribute{}, nil
}

type fakeShipping struct{}

func (fakeShipping) ListShippingRegions(context.Context) ([]models.ShippingRegion, error) {
	return []models.ShippingRegion{{ID: 1, Name: "Please Select"}}, nil
}

func (fakeShipping) ShippingOptions(_ context.Context, regionID int) ([]models.Shipping, error) {
	if regionID != 2 {
		return nil, apperrors.NotFound("shipping region not found")
	}
	return []models.Shipping{{ID: 1, Type: "Next Day Delivery ($20)", Cost: decimal.NewFromInt(20), ShippingRegionID: 2}}, nil
}

func (fakeShipping) ListTaxes(context.Context) ([]models.Tax, error) {
	return []models.Tax{{ID: 1, Type: "Sales Tax at 8.5%", Percentage: decimal.RequireFromString("8.50")}}, nil
}

func (fakeShipping) GetTax(_ context.Context, taxID int) (*models.Tax, error) {
	if taxID != 1 {
		return nil, apperrors.NotFound("tax not found")
	}
	return &models.Tax{ID: 1}, nil
}
