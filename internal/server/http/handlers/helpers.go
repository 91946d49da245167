package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/server/http/dto"
	"github.com/polkiloo/ordersvc/internal/server/http/middleware"
)

const internalErrorMessage = "Internal server error"

// CurrentCredential returns the caller credential captured by middleware.
func CurrentCredential(c *gin.Context) string {
	val, ok := c.Get(middleware.CredentialContextKey)
	if !ok {
		return ""
	}
	credential, _ := val.(string)
	return credential
}

// writeError maps domain errors to status codes. Unexpected failures are
// logged and reported with a generic message.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrInsufficientInventory),
		errors.Is(err, domainErrors.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrUserValidationFailed):
		c.JSON(http.StatusUnauthorized, dto.Fail("User not found or unauthorized"))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("Order not found"))
	case errors.Is(err, domainErrors.ErrProductUnavailable):
		c.JSON(http.StatusBadGateway, dto.Fail(err.Error()))
	default:
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
	}
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
