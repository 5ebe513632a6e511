package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/logger"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

const (
	generationFailedMessage  = "Generation failed. Please try again."
	generationTimeoutMessage = "Generation took too long. Please try again."
	internalErrorMessage     = "Internal server error"
)

// respondError logs err with the operation and ids, then writes the
// client-facing envelope. Generation failures never leak upstream text.
func respondError(c *gin.Context, log *logger.Logger, op string, err error, kv ...interface{}) {
	status, body := errorResponse(err)

	if log != nil {
		fields := append([]interface{}{"op", op, "status", status, "error", err.Error()}, kv...)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Warn("request rejected", fields...)
		}
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, ErrorBody) {
	var (
		verr *domain.ValidationError
		nerr *domain.NotFoundError
		gerr *domain.GenerationError
		xerr *domain.ExternalServiceError
	)
	switch {
	case errors.As(err, &verr):
		msg := verr.Message
		if verr.Field != "" {
			msg = verr.Field + " " + verr.Message
		}
		return http.StatusBadRequest, ErrorBody{Error: msg, Details: verr.Details}
	case errors.As(err, &nerr):
		return http.StatusNotFound, ErrorBody{Error: nerr.Error()}
	case errors.As(err, &gerr):
		if gerr.Kind == domain.GenerationTimeout {
			return http.StatusInternalServerError, ErrorBody{Error: generationTimeoutMessage}
		}
		return http.StatusInternalServerError, ErrorBody{Error: generationFailedMessage}
	case errors.As(err, &xerr):
		return http.StatusInternalServerError, ErrorBody{Error: xerr.Message}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: internalErrorMessage}
	}
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their JSON names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes and validates the request body. Failures come back as a
// ValidationError with one detail per offending field.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fieldMessage(fe))
		}
		return &domain.ValidationError{Message: "invalid request body", Details: details}
	}
	return &domain.ValidationError{Message: "invalid request body", Details: []string{err.Error()}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
