package httperr

import (
	"log/slog"
	"net/http"

	"decor-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"

	internalMessage = "Internal server error"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, code, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, code, msg, detail)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Respond maps a use case error onto its HTTP status by error kind.
// Unclassified errors become a 500 with a fixed message.
func Respond(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"request_id", c.GetString("request_id"),
			"path", c.Request.URL.Path,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 10))
		AbortWithError(c, status, err, code, internalMessage, nil)
		return
	}
	AbortWithError(c, status, err, code, err.Error(), nil)
}

func Classify(err error) (int, string) {
	switch errs.Kind(err) {
	case CodeValidation:
		return http.StatusBadRequest, CodeValidation
	case CodeNotFound:
		return http.StatusNotFound, CodeNotFound
	case CodeForbidden:
		return http.StatusForbidden, CodeForbidden
	case CodeInvalidTransition:
		return http.StatusConflict, CodeInvalidTransition
	case CodeConflict:
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, CodeValidation, msg, nil)
}

func Unauthorized(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusUnauthorized, err, CodeUnauthorized, msg, nil)
}
