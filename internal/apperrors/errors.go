package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrUnauthorized indicates that the caller identity could not be resolved.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates a storage or infrastructure failure unrelated to business rules.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Business rule sentinels for the sale / cash-session engine. These are shared
// between repositories, services and handlers so every layer can classify them
// with errors.Is.
var (
	// ErrInsufficientStock indicates a sale line asked for more units than the
	// stock line holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPriceNotFound indicates a sale line references a (book, condition)
	// with no usable price.
	ErrPriceNotFound = errors.New("price not found")

	// ErrNoOpenSession indicates a sale or manual movement was attempted with
	// no open cash session.
	ErrNoOpenSession = errors.New("no open cash session")

	// ErrSessionAlreadyOpen indicates an open was attempted while another
	// session is still open.
	ErrSessionAlreadyOpen = errors.New("a cash session is already open")

	// ErrSessionNotOpen indicates a session-mutating operation targeted a
	// session that is not the currently open one.
	ErrSessionNotOpen = errors.New("cash session is not open")

	// ErrReversalNotAllowed indicates a reversal targeted a sale whose owning
	// session has already been closed.
	ErrReversalNotAllowed = errors.New("sale reversal not allowed")
)

// AppError carries an HTTP-ish status code alongside a message and an
// optional wrapped cause. Repositories use it for storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	// Storage failures without a more specific cause classify as internal.
	return ErrInternal
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that classifies as ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
