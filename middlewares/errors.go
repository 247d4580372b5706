package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/apperrors"
)

type errorBody struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope every failed request gets.
type ErrorResponse struct {
	Error errorBody `json:"error"`
}

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:  http.StatusBadRequest,
	apperrors.KindNotFound:    http.StatusNotFound,
	apperrors.KindAuth:        http.StatusUnauthorized,
	apperrors.KindConflict:    http.StatusConflict,
	apperrors.KindPersistence: http.StatusInternalServerError,
}

// StatusFor maps an error onto an HTTP status. Untyped errors are 500s.
func StatusFor(err error) int {
	if kind, ok := apperrors.KindOf(err); ok {
		if status, ok := statusByKind[kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// AbortWithError writes the envelope and stops the handler chain. Internal
// causes never reach the client; only the error's own message does.
func AbortWithError(c *gin.Context, err error) {
	status := StatusFor(err)
	body := errorBody{Status: status, Code: string(apperrors.KindPersistence), Message: "internal server error"}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Code = string(appErr.Kind)
		if appErr.Kind != apperrors.KindPersistence {
			body.Message = appErr.Message
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}
