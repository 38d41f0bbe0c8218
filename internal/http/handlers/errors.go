package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"amabackend/internal/domain"
	"amabackend/internal/http/middleware"
	"amabackend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", "unhandled error", "path", c.FullPath(), "err", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
	}
}

// bindJSON decodes the body into dst and runs binding validation. Failures
// are answered with 400 and false is returned.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if errors.Is(err, io.EOF) {
		return domain.ValidationError{Field: "body", Msg: "request body is empty", Err: err}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q validation (%s)", fe.Tag(), fe.Param())
		}
		return domain.ValidationError{Field: fe.Field(), Msg: msg, Err: err}
	}
	return domain.ValidationError{Field: "body", Msg: "payload is not valid JSON", Err: err}
}
