package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/apperrors"
)

const (
	// CustomerIDKey is where AuthMiddleware leaves the authenticated customer.
	CustomerIDKey = "customerID"

	userKeyHeader = "USER-KEY"
)

type CredentialVerifier interface {
	VerifyCredential(credential string) (int, error)
}

// AuthMiddleware admits requests carrying a valid bearer token in the
// Authorization header, or in USER-KEY for older clients.
func AuthMiddleware(verifier CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")
		if credential == "" {
			credential = c.GetHeader(userKeyHeader)
		}

		customerID, err := verifier.VerifyCredential(credential)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

// CustomerID returns the id set by AuthMiddleware.
func CustomerID(c *gin.Context) (int, error) {
	id, ok := c.Get(CustomerIDKey)
	if !ok {
		return 0, apperrors.Auth(apperrors.ReasonInvalidScheme, "authorization required")
	}
	customerID, ok := id.(int)
	if !ok || customerID <= 0 {
		return 0, apperrors.Auth(apperrors.ReasonInvalidOrExpired, "invalid or expired token")
	}
	return customerID, nil
}
