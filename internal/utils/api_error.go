package utils

import (
	"errors"
	"net/http"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor translates the error taxonomy into an HTTP status code.
func StatusFor(err error) int {
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody shapes the JSON body sent for err.
func ErrorBody(err error) types.ErrorResponse {
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	var storeErr *types.StoreError
	switch {
	case errors.As(err, &validationErr):
		return types.ErrorResponse{
			Message: "Invalid request",
			Error:   validationErr,
		}
	case errors.As(err, &notFoundErr):
		return types.ErrorResponse{Message: notFoundErr.Error()}
	case errors.As(err, &storeErr):
		details := gin.H{"operation": storeErr.Op, "cause": storeErr.Err.Error()}
		if storeErr.Code != "" {
			details["code"] = storeErr.Code
		}
		if storeErr.Constraint != "" {
			details["constraint"] = storeErr.Constraint
		}
		return types.ErrorResponse{
			Error:   "Store operation failed",
			Details: details,
		}
	default:
		return types.ErrorResponse{
			Error:   "Internal Server Error",
			Details: err.Error(),
		}
	}
}

// RespondError logs err and writes its translated status and body.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		Zlog.Error("Request failed", fields...)
	} else {
		Zlog.Warn("Request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, ErrorBody(err))
}
