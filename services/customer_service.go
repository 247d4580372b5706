package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/repository"
)

const invalidCredentials = "email or password is invalid"

type CustomerStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (int, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByID(ctx context.Context, customerID int) (*models.Customer, error)
	UpdateAddress(ctx context.Context, customerID int, address models.Address) error
}

type TokenIssuer interface {
	IssueToken(customerID int) (string, time.Duration, error)
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Customer    *models.Customer
	AccessToken string
	ExpiresIn   time.Duration
}

type CustomerService struct {
	store      CustomerStore
	tokens     TokenIssuer
	log        *zap.Logger
	bcryptCost int
}

func NewCustomerService(store CustomerStore, tokens TokenIssuer, log *zap.Logger) *CustomerService {
	return &CustomerService{
		store:      store,
		tokens:     tokens,
		log:        orNop(log),
		bcryptCost: bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CustomerService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Validation("password cannot be used")
	}

	id, err := s.store.Create(ctx, name, email, string(hash))
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperrors.Conflict("email already registered", err)
	}
	if err != nil {
		return nil, storeError(s.log, "create customer", err, "")
	}

	customer, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "read customer", err, "customer not found")
	}
	s.log.Info("customer registered", zap.Int("customer_id", id))
	return s.authenticate(customer)
}

// Login reports unknown emails and wrong passwords the same way.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	customer, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Auth(apperrors.ReasonInvalidCredentials, invalidCredentials)
	}
	if err != nil {
		return nil, storeError(s.log, "find customer", err, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Auth(apperrors.ReasonInvalidCredentials, invalidCredentials)
	}
	return s.authenticate(customer)
}

func (s *CustomerService) authenticate(customer *models.Customer) (*AuthResult, error) {
	token, ttl, err := s.tokens.IssueToken(customer.ID)
	if err != nil {
		s.log.Error("token signing failed", zap.Int("customer_id", customer.ID), zap.Error(err))
		return nil, apperrors.Persistence("issue token failed", err)
	}
	return &AuthResult{Customer: customer, AccessToken: token, ExpiresIn: ttl}, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int) (*models.Customer, error) {
	customer, err := s.store.FindByID(ctx, customerID)
	if err != nil {
		return nil, storeError(s.log, "find customer", err, "customer not found")
	}
	return customer, nil
}

func (s *CustomerService) UpdateAddress(ctx context.Context, customerID int, address models.Address) (*models.Customer, error) {
	if address.ShippingRegionID < 1 {
		return nil, apperrors.Validation("shipping_region_id must be positive")
	}
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateAddress(ctx, customerID, address); err != nil {
		return nil, storeError(s.log, "update address", err, "")
	}
	return s.GetCustomer(ctx, customerID)
}
