package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// AppError is an error with the HTTP status it is reported with.
type AppError struct {
	Code    int
	Message string
	Err     error // internal cause, logged but not returned
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound creates a 404 error
func NotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// BadRequest creates a 400 error
func BadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// Unprocessable creates a 422 error
func Unprocessable(message string, err error) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Err: err}
}

// Internal creates a 500 error
func Internal(err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// fromQueryError maps an engine error to its HTTP status. Missing data and
// an unknown lookup column are not-found conditions; every other validation
// failure is a bad request.
func fromQueryError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var keyErr *types.KeyError
	switch {
	case errors.Is(err, types.ErrDataUnavailable):
		return NotFound(err.Error())
	case errors.As(err, &keyErr):
		if keyErr.Lookup {
			return NotFound(err.Error())
		}
		return BadRequest(err.Error())
	case errors.Is(err, types.ErrInvalidCount),
		errors.Is(err, types.ErrInvalidOffset),
		errors.Is(err, types.ErrKeyValueMismatch):
		return BadRequest(err.Error())
	default:
		return Internal(err)
	}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// abort writes err as {"detail": ...} with its mapped status and stops the
// handler chain.
func (s *Server) abort(c *gin.Context, err error) {
	appErr := fromQueryError(err)
	if appErr.Code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "request_id", requestID(c), "error", err)
	} else {
		s.logger.Debug("request rejected", "path", c.Request.URL.Path, "status", appErr.Code, "detail", appErr.Message)
	}
	c.AbortWithStatusJSON(appErr.Code, ErrorResponse{Detail: appErr.Message})
}
