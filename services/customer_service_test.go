package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
)

func newCustomerService(store *fakeCustomerStore) *CustomerService {
	svc := NewCustomerService(store, fakeTokens{}, nil)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func TestCustomerService_RegisterHashesPassword(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newCustomerService(store)

	res, err := svc.Register(context.Background(), "Ann", " Ann@Example.com ", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.Customer.Email)
	assert.Equal(t, "token-1", res.AccessToken)
	assert.Equal(t, 24*time.Hour, res.ExpiresIn)
	assert.NotEqual(t, "s3cret", store.byID[1].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.byID[1].PasswordHash), []byte("s3cret")))
}

func TestCustomerService_RegisterDuplicateEmail(t *testing.T) {
	svc := newCustomerService(newFakeCustomerStore())
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ann", "ann@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ann", "ANN@example.com", "other")

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCustomerService_RegisterValidation(t *testing.T) {
	svc := newCustomerService(newFakeCustomerStore())

	_, err := svc.Register(context.Background(), "  ", "ann@example.com", "s3cret")

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCustomerService_Login(t *testing.T) {
	svc := newCustomerService(newFakeCustomerStore())
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ann", "ann@example.com", "s3cret")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "ann@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Customer.ID)

	_, wrongPassword := svc.Login(ctx, "ann@example.com", "nope")
	_, unknownEmail := svc.Login(ctx, "bob@example.com", "s3cret")
	for _, err := range []error{wrongPassword, unknownEmail} {
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
		assert.Equal(t, apperrors.ReasonInvalidCredentials, apperrors.ReasonOf(err))
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCustomerService_TokenFailure(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerStore(), fakeTokens{Err: errors.New("bad key")}, nil)
	svc.bcryptCost = bcrypt.MinCost

	_, err := svc.Register(context.Background(), "Ann", "ann@example.com", "s3cret")

	assert.True(t, apperrors.IsKind(err, apperrors.KindPersistence))
}

func TestCustomerService_UpdateAddress(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newCustomerService(store)
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ann", "ann@example.com", "s3cret")
	require.NoError(t, err)

	c, err := svc.UpdateAddress(ctx, 1, models.Address{Address1: "1 Rue", City: "Paris", Country: "France", ShippingRegionID: 3})

	require.NoError(t, err)
	assert.Equal(t, "Paris", c.City)
	assert.Equal(t, 3, c.ShippingRegionID)
}

func TestCustomerService_UpdateAddressUnknownCustomer(t *testing.T) {
	svc := newCustomerService(newFakeCustomerStore())

	_, err := svc.UpdateAddress(context.Background(), 99, models.Address{ShippingRegionID: 1})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
