package middleware

import (
	"errors"
	"net/http"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   int                    `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler is the centralized fiber error handler; it is the only place
// domain error codes become HTTP statuses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", RequestID(c)),
		)

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := mapDomainErrorToHTTPStatus(domainErr)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", status),
			}
			if domainErr.Err != nil {
				fields = append(fields, zap.Error(domainErr.Err))
			}
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", fields...)
			} else {
				log.Info("Request rejected", fields...)
			}

			resp := ErrorResponse{
				Success: false,
				Error:   status,
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
			}
			if len(domainErr.Context) > 0 {
				resp.Details = domainErr.Context
			}
			return c.Status(status).JSON(resp)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Success: false,
				Error:   fiberErr.Code,
				Code:    httpCode(fiberErr.Code),
				Message: fiberErr.Message,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Error:   http.StatusInternalServerError,
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeValidation:
		return http.StatusUnprocessableEntity
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func httpCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(domain.CodeNotFound)
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domain.CodeValidation)
	default:
		return "HTTP_ERROR"
	}
}
