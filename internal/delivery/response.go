package delivery

import (
	"errors"

	"canteen_service/internal/domain"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error payload shape shared by all endpoints. Detail
// carries the underlying error description for unexpected failures.
type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Message: message})
}

func ErrorResponseWithDetail(c *gin.Context, statusCode int, message string, err error) {
	c.JSON(statusCode, ErrorBody{Message: message, Detail: err.Error()})
}

// isValidationError reports whether the error is a client-caused request
// validation failure (maps to 400 rather than 500).
func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidDeliveryType) ||
		errors.Is(err, domain.ErrHostelNameRequired) ||
		errors.Is(err, domain.ErrPickupTimeRequired) ||
		errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrInvalidQuantity)
}
