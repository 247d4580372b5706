package services

import (
	"errors"

	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/repository"
)

// storeError maps a repository failure onto the taxonomy. Missing rows become
// NotFound with notFoundMsg; anything else is logged and becomes Persistence.
func storeError(log *zap.Logger, op string, err error, notFoundMsg string) error {
	if notFoundMsg != "" && errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return apperrors.Persistence(op+" failed", err)
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
