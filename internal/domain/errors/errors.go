package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwner      = errors.New("account owns this media item")
	ErrBelowMinimum      = errors.New("amount below platform minimum")
	ErrDuplicatePending  = errors.New("a pending withdrawal request already exists")
	ErrNotPending        = errors.New("withdrawal request is not pending")
	ErrTransactionFailed = errors.New("transaction failed")
)

// InsufficientFundsError carries the amounts a caller needs to prompt a
// top-up instead of a generic failure.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s", e.Required, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientFunds) match the typed error.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// NewInsufficientFunds creates an InsufficientFundsError
func NewInsufficientFunds(required, available decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{Required: required, Available: available}
}

// BelowMinimumError carries the platform minimum alongside the rejected amount.
type BelowMinimumError struct {
	Minimum   decimal.Decimal
	Requested decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("amount %s is below the platform minimum of %s", e.Requested, e.Minimum)
}

// Is lets errors.Is(err, ErrBelowMinimum) match the typed error.
func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimum
}

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "ERR_NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "ERR_BAD_REQUEST", message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "ERR_UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "ERR_FORBIDDEN", message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "ERR_CONFLICT", message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", err)
}
