package service

import (
	"errors"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// storeError passes domain errors through and reports anything else as UNAVAILABLE.
func storeError(op string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	logger.Get().Error("Catalog store failure", zap.String("op", op), zap.Error(err))
	return domain.NewUnavailableError("Catalog store is unavailable", err)
}
