package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success is the envelope for successful responses.
type Success struct {
	OK      bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Failure is the envelope for error responses. StatusCode mirrors the HTTP
// status so clients reading only the body see the same value.
type Failure struct {
	OK         bool   `json:"success"`
	ErrMessage string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// AppError is a structured application error carrying an HTTP status.
type AppError struct {
	HTTPStatus int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// --- Gin response helpers ---

// OK sends a 200 response with data wrapped in the success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Success{OK: true, Message: "Success", Data: data})
}

// OKMessage sends a 200 response with a custom message.
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Success{OK: true, Message: message, Data: data})
}

// Created sends a 201 response with data wrapped in the success envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Success{OK: true, Message: "Success", Data: data})
}

// CreatedMessage sends a 201 response with a custom message.
func CreatedMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Success{OK: true, Message: message, Data: data})
}

// Error sends an error response. If err is an *AppError its status is used;
// any other error becomes a generic 500 so internal causes never leak.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Failure{
			ErrMessage: appErr.Message,
			StatusCode: appErr.HTTPStatus,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Failure{
		ErrMessage: "Internal server error",
		StatusCode: http.StatusInternalServerError,
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Failure{ErrMessage: msg, StatusCode: status})
}

func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, msg)
}

func Forbidden(c *gin.Context, msg string) {
	fail(c, http.StatusForbidden, msg)
}

func NotFound(c *gin.Context, msg string) {
	fail(c, http.StatusNotFound, msg)
}

func Conflict(c *gin.Context, msg string) {
	fail(c, http.StatusConflict, msg)
}

func ServerError(c *gin.Context, msg string) {
	fail(c, http.StatusInternalServerError, msg)
}
