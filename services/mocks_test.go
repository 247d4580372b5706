package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/romilkhanna/turing-backend/cache"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/repository"
)

// fakeCartStore keeps cart lines in memory with the same create-or-increment
// semantics as the MySQL upsert.
type fakeCartStore struct {
	products map[int]models.Product
	items    []models.CartItemView
	nextID   int
	Err      error
	Upserts  int
}

func newFakeCartStore(products ...models.Product) *fakeCartStore {
	s := &fakeCartStore{products: map[int]models.Product{}, nextID: 1}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeCartStore) view(i int) *models.CartItemView {
	v := s.items[i]
	v.ComputeSubtotal()
	return &v
}

func (s *fakeCartStore) ProductExists(_ context.Context, productID int) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.products[productID]
	return ok, nil
}

func (s *fakeCartStore) UpsertItem(_ context.Context, cartID string, productID int, attributes string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Upserts++
	for i := range s.items {
		it := &s.items[i]
		if it.CartID == cartID && it.ProductID == productID && it.Attributes == attributes {
			it.Quantity++
			return nil
		}
	}
	p := s.products[productID]
	s.items = append(s.items, models.CartItemView{
		CartItem: models.CartItem{
			ItemID:     s.nextID,
			CartID:     cartID,
			ProductID:  productID,
			Attributes: attributes,
			Quantity:   1,
			AddedOn:    time.Now(),
		},
		Name:  p.Name,
		Price: p.UnitPrice(),
		Image: p.Thumbnail,
	})
	s.nextID++
	return nil
}

func (s *fakeCartStore) FindItem(_ context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i, it := range s.items {
		if it.CartID == cartID && it.ProductID == productID && it.Attributes == attributes {
			return s.view(i), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCartStore) FindItemByID(_ context.Context, itemID int) (*models.CartItemView, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i, it := range s.items {
		if it.ItemID == itemID {
			return s.view(i), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCartStore) ListItems(_ context.Context, cartID string) ([]models.CartItemView, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.CartItemView{}
	for i, it := range s.items {
		if it.CartID == cartID {
			out = append(out, *s.view(i))
		}
	}
	return out, nil
}

func (s *fakeCartStore) UpdateQuantity(_ context.Context, itemID, quantity int) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			s.items[i].Quantity = quantity
		}
	}
	return nil
}

func (s *fakeCartStore) DeleteItem(_ context.Context, itemID int) error {
	if s.Err != nil {
		return s.Err
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

func (s *fakeCartStore) DeleteCart(_ context.Context, cartID string) error {
	if s.Err != nil {
		return s.Err
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

// fakeOrderStore commits an order only when CreateErr is nil, so a failed
// create leaves nothing behind.
type fakeOrderStore struct {
	orders    []models.Order
	details   map[int][]models.OrderDetail
	nextID    int
	CreateErr error
	ReadErr   error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{details: map[int][]models.OrderDetail{}, nextID: 1}
}

func (s *fakeOrderStore) CreateWithDetails(_ context.Context, order models.Order, details []models.OrderDetail) (int, error) {
	if s.CreateErr != nil {
		return 0, s.CreateErr
	}
	order.ID = s.nextID
	s.nextID++
	s.orders = append(s.orders, order)
	for i := range details {
		details[i].OrderID = order.ID
		details[i].ItemID = i + 1
	}
	s.details[order.ID] = details
	return order.ID, nil
}

func (s *fakeOrderStore) ListByCustomer(_ context.Context, customerID int) ([]models.Order, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	out := []models.Order{}
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeOrderStore) FindForCustomer(_ context.Context, orderID, customerID int) (*models.Order, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	for _, o := range s.orders {
		if o.ID == orderID && o.CustomerID == customerID {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeOrderStore) DetailsForCustomer(ctx context.Context, orderID, customerID int) ([]models.OrderDetailView, error) {
	if _, err := s.FindForCustomer(ctx, orderID, customerID); err != nil {
		if err == repository.ErrNotFound {
			return []models.OrderDetailView{}, nil
		}
		return nil, err
	}
	out := []models.OrderDetailView{}
	for _, d := range s.details[orderID] {
		out = append(out, models.OrderDetailView{OrderDetail: d, Subtotal: d.Subtotal()})
	}
	return out, nil
}

type fakeShippingStore struct {
	regions   []models.ShippingRegion
	shippings []models.Shipping
	taxes     []models.Tax
	Err       error
}

func newFakeShippingStore() *fakeShippingStore {
	return &fakeShippingStore{
		regions: []models.ShippingRegion{{ID: 1, Name: "Please Select"}, {ID: 2, Name: "US / Canada"}},
		shippings: []models.Shipping{
			{ID: 1, Type: "Next Day Delivery ($20)", Cost: decimal.NewFromInt(20), ShippingRegionID: 2},
			{ID: 2, Type: "3-4 Days ($10)", Cost: decimal.NewFromInt(10), ShippingRegionID: 2},
		},
		taxes: []models.Tax{
			{ID: 1, Type: "Sales Tax at 8.5%", Percentage: decimal.RequireFromString("8.50")},
			{ID: 2, Type: "No Tax", Percentage: decimal.Zero},
		},
	}
}

func (s *fakeShippingStore) ListRegions(context.Context) ([]models.ShippingRegion, error) {
	return s.regions, s.Err
}

func (s *fakeShippingStore) ShippingByRegion(_ context.Context, regionID int) ([]models.Shipping, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Shipping{}
	for _, sh := range s.shippings {
		if sh.ShippingRegionID == regionID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *fakeShippingStore) GetShipping(_ context.Context, shippingID int) (*models.Shipping, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, sh := range s.shippings {
		if sh.ID == shippingID {
			return &sh, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeShippingStore) ListTaxes(context.Context) ([]models.Tax, error) {
	return s.taxes, s.Err
}

func (s *fakeShippingStore) GetTax(_ context.Context, taxID int) (*models.Tax, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.taxes {
		if t.ID == taxID {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePublisher struct {
	Events []models.OrderEvent
	Err    error
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event models.OrderEvent) error {
	p.Events = append(p.Events, event)
	return p.Err
}

type fakeCustomerStore struct {
	byID      map[int]*models.Customer
	nextID    int
	CreateErr error
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{byID: map[int]*models.Customer{}, nextID: 1}
}

func (s *fakeCustomerStore) Create(_ context.Context, name, email, passwordHash string) (int, error) {
	if s.CreateErr != nil {
		return 0, s.CreateErr
	}
	for _, c := range s.byID {
		if c.Email == email {
			return 0, repository.ErrDuplicate
		}
	}
	id := s.nextID
	s.nextID++
	s.byID[id] = &models.Customer{ID: id, Name: name, Email: email, PasswordHash: passwordHash, ShippingRegionID: 1}
	return id, nil
}

func (s *fakeCustomerStore) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	for _, c := range s.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCustomerStore) FindByID(_ context.Context, customerID int) (*models.Customer, error) {
	c, ok := s.byID[customerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCustomerStore) UpdateAddress(_ context.Context, customerID int, a models.Address) error {
	c, ok := s.byID[customerID]
	if !ok {
		return nil
	}
	c.Address1, c.Address2, c.City, c.Region = a.Address1, a.Address2, a.City, a.Region
	c.PostalCode, c.Country, c.ShippingRegionID = a.PostalCode, a.Country, a.ShippingRegionID
	return nil
}

type fakeTokens struct {
	Err error
}

func (f fakeTokens) IssueToken(customerID int) (string, time.Duration, error) {
	if f.Err != nil {
		return "", 0, f.Err
	}
	return fmt.Sprintf("token-%d", customerID), 24 * time.Hour, nil
}

// fakeCatalogStore serves a fixed product list and counts detail reads.
type fakeCatalogStore struct {
	products      []models.ProductSummary
	product       *models.Product
	Err           error
	GetCalls      int
	LastOffset    int
	LastLimit     int
	LastWords     []string
	LastAllWords  bool
	LastCategoryO string
}

func (s *fakeCatalogStore) page(offset, limit int) ([]models.ProductSummary, error) {
	s.LastOffset, s.LastLimit = offset, limit
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.ProductSummary{}
	for i := offset; i < len(s.products) && i < offset+limit; i++ {
		out = append(out, s.products[i])
	}
	return out, nil
}

func (s *fakeCatalogStore) CountProducts(context.Context) (int, error) {
	return len(s.products), s.Err
}

func (s *fakeCatalogStore) ListProducts(_ context.Context, offset, limit int) ([]models.ProductSummary, error) {
	return s.page(offset, limit)
}

func (s *fakeCatalogStore) CountSearch(_ context.Context, words []string, allWords bool) (int, error) {
	s.LastWords, s.LastAllWords = words, allWords
	return len(s.products), s.Err
}

func (s *fakeCatalogStore) SearchProducts(_ context.Context, _ []string, _ bool, offset, limit int) ([]models.ProductSummary, error) {
	return s.page(offset, limit)
}

func (s *fakeCatalogStore) GetProduct(_ context.Context, productID int) (*models.Product, error) {
	s.GetCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.product == nil || s.product.ID != productID {
		return nil, repository.ErrNotFound
	}
	p := *s.product
	return &p, nil
}

func (s *fakeCatalogStore) CountProductsInCategory(context.Context, int) (int, error) {
	return len(s.products), s.Err
}

func (s *fakeCatalogStore) ProductsInCategory(_ context.Context, _ int, offset, limit int) ([]models.ProductSummary, error) {
	return s.page(offset, limit)
}

func (s *fakeCatalogStore) CountProductsInDepartment(context.Context, int) (int, error) {
	return len(s.products), s.Err
}

func (s *fakeCatalogStore) ProductsInDepartment(_ context.Context, _ int, offset, limit int) ([]models.ProductSummary, error) {
	return s.page(offset, limit)
}

func (s *fakeCatalogStore) ListDepartments(context.Context) ([]models.Department, error) {
	return []models.Department{{ID: 1, Name: "Regional"}}, s.Err
}

func (s *fakeCatalogStore) GetDepartment(_ context.Context, id int) (*models.Department, error) {
	if id != 1 {
		return nil, repository.ErrNotFound
	}
	return &models.Department{ID: 1, Name: "Regional"}, s.Err
}

func (s *fakeCatalogStore) CountCategories(context.Context) (int, error) {
	return 1, s.Err
}

func (s *fakeCatalogStore) ListCategories(_ context.Context, orderBy string, offset, limit int) ([]models.Category, error) {
	s.LastCategoryO, s.LastOffset, s.LastLimit = orderBy, offset, limit
	return []models.Category{{ID: 1, DepartmentID: 1, Name: "French"}}, s.Err
}

func (s *fakeCatalogStore) GetCategory(_ context.Context, id int) (*models.Category, error) {
	if id != 1 {
		return nil, repository.ErrNotFound
	}
	return &models.Category{ID: 1, DepartmentID: 1, Name: "French"}, s.Err
}

func (s *fakeCatalogStore) CategoriesInDepartment(context.Context, int) ([]models.Category, error) {
	return []models.Category{}, s.Err
}

func (s *fakeCatalogStore) CategoriesOfProduct(context.Context, int) ([]models.ProductCategory, error) {
	return []models.ProductCategory{}, s.Err
}

func (s *fakeCatalogStore) ListAttributes(context.Context) ([]models.Attribute, error) {
	return []models.Attribute{{ID: 1, Name: "Size"}}, s.Err
}

func (s *fakeCatalogStore) GetAttribute(_ context.Context, id int) (*models.Attribute, error) {
	if id != 1 {
		return nil, repository.ErrNotFound
	}
	return &models.Attribute{ID: 1, Name: "Size"}, s.Err
}

func (s *fakeCatalogStore) AttributeValues(context.Context, int) ([]models.AttributeValue, error) {
	return []models.AttributeValue{}, s.Err
}

func (s *fakeCatalogStore) ProductAttributes(context.Context, int) ([]models.ProductAttribute, error) {
	return []models.ProductAttribute{}, s.Err
}

type fakeProductCache struct {
	entries map[int]models.Product
	GetErr  error
	SetErr  error
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: map[int]models.Product{}}
}

func (c *fakeProductCache) Get(_ context.Context, productID int) (*models.Product, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	p, ok := c.entries[productID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &p, nil
}

func (c *fakeProductCache) Set(_ context.Context, product *models.Product) error {
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[product.ID] = *product
	return nil
}

func (c *fakeProductCache) Delete(_ context.Context, productID int) error {
	delete(c.entries, productID)
	return nil
}
