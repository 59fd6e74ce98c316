package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/vendaflow/vendaflow/internal/commission/domain"
	goaldomain "github.com/vendaflow/vendaflow/internal/goal/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	perfdomain "github.com/vendaflow/vendaflow/internal/performance/domain"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    err.Error(),
					Message: err.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isMeetingValidationError(err),
		isSaleValidationError(err),
		isGoalValidationError(err),
		isPerformanceValidationError(err),
		isCommissionValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	return errors.Is(err, meetingdomain.ErrConflitoAgenda) ||
		errors.Is(err, meetingdomain.ErrEventoBloqueado) ||
		errors.Is(err, meetingdomain.ErrAlreadyCancelled) ||
		errors.Is(err, saledomain.ErrAlreadyReviewed)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, meetingdomain.ErrNotFound) ||
		errors.Is(err, saledomain.ErrNotFound) ||
		errors.Is(err, goaldomain.ErrNotFound) ||
		errors.Is(err, commissiondomain.ErrNotFound)
}

func isMeetingValidationError(err error) bool {
	switch err {
	case meetingdomain.ErrInvalidVendedor,
		meetingdomain.ErrInvalidSDR,
		meetingdomain.ErrInvalidInteresse,
		meetingdomain.ErrInvalidData,
		meetingdomain.ErrInvalidDataFim,
		meetingdomain.ErrInvalidLink,
		meetingdomain.ErrInvalidLead,
		meetingdomain.ErrInvalidResultado,
		meetingdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isSaleValidationError(err error) bool {
	switch err {
	case saledomain.ErrInvalidVendedor,
		saledomain.ErrInvalidSDR,
		saledomain.ErrInvalidCurso,
		saledomain.ErrInvalidData,
		saledomain.ErrInvalidPontuacao,
		saledomain.ErrInvalidAluno,
		saledomain.ErrInvalidID,
		saledomain.ErrMeetingNotFound:
		return true
	default:
		return false
	}
}

func isGoalValidationError(err error) bool {
	switch err {
	case goaldomain.ErrInvalidUser,
		goaldomain.ErrInvalidPeriod,
		goaldomain.ErrInvalidMeta:
		return true
	default:
		return false
	}
}

func isPerformanceValidationError(err error) bool {
	switch err {
	case perfdomain.ErrInvalidData,
		perfdomain.ErrInvalidEscopo,
		perfdomain.ErrInvalidPapel:
		return true
	default:
		return false
	}
}

func isCommissionValidationError(err error) bool {
	switch err {
	case commissiondomain.ErrInvalidTipoUsuario,
		commissiondomain.ErrInvalidFaixa,
		commissiondomain.ErrInvalidMultiplier,
		commissiondomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

// classifyErrorForLog feeds the request logger's error_type/error_code fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status == http.StatusConflict:
		return "conflict", payload.Type
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "auth", payload.Type
	default:
		return "client", payload.Type
	}
}
