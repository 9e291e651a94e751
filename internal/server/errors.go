package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/divah21/stage-one-backend/internal/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code"`
	Hint   string `json:"hint,omitempty"`
}

// StatusFor maps an error kind code to its HTTP status.
func StatusFor(kind string) int {
	switch kind {
	case errors.KindDuplicateKey:
		return http.StatusConflict
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindUnparseableQuery, errors.KindInvalidInput:
		return http.StatusBadRequest
	case errors.KindConflictingFilters, errors.KindInvalidType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// message is the client-facing text for err. Internal failures are not
// described to the client.
func message(err error, kind string) string {
	switch kind {
	case errors.KindDuplicateKey:
		return "String already exists in the system"
	case errors.KindNotFound:
		return "String does not exist in the system"
	case errors.KindUnparseableQuery:
		return "Unable to parse natural language query"
	case errors.KindConflictingFilters:
		return "Query parsed but resulted in conflicting filters"
	case errors.KindInvalidType, errors.KindInvalidInput:
		msg := strings.TrimSuffix(err.Error(), ": "+errors.ErrInvalidInput.Error())
		msg = strings.TrimSuffix(msg, ": invalid data type")
		return msg
	default:
		return "Internal server error"
	}
}

// abortWithError writes the ErrorResponse for err and stops the chain.
// The error is attached to the gin context so the access log records it.
func abortWithError(c *gin.Context, err error) {
	kind := errors.Kind(err)
	_ = c.Error(err)
	c.Set(errorCodeKey, kind)

	c.AbortWithStatusJSON(StatusFor(kind), ErrorResponse{
		Status: "error",
		Error:  message(err, kind),
		Code:   kind,
		Hint:   errors.FlattenHints(err),
	})
}
