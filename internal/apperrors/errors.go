package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyPatch is returned when a patch payload has no effective fields
// left after dropping nulls.
var ErrEmptyPatch = errors.New("patch contains no fields to update")

// NotFoundError indicates that the requested entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// UnprocessableEntityError indicates a payload that is syntactically valid
// JSON but violates the entity's attribute contract.
type UnprocessableEntityError struct {
	Message string
}

func (e *UnprocessableEntityError) Error() string {
	return e.Message
}

func NewUnprocessableEntity(format string, args ...interface{}) *UnprocessableEntityError {
	return &UnprocessableEntityError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError indicates a malformed request body.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequest(format string, args ...interface{}) *BadRequestError {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// InvalidIDError indicates a path or reference id that is not a valid
// object id.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id: %s", e.ID)
}

func NewInvalidID(id string) *InvalidIDError {
	return &InvalidIDError{ID: id}
}

// AuthError carries an authentication or authorization failure together
// with the HTTP status it should surface as (401 or 403).
type AuthError struct {
	Code        string
	Description string
	Status      int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func NewAuthError(code, description string, status int) *AuthError {
	return &AuthError{Code: code, Description: description, Status: status}
}

// Forbidden is the AuthError raised on a self-scope violation.
func Forbidden() *AuthError {
	return NewAuthError("forbidden", "Forbidden", http.StatusForbidden)
}

// Provider error kinds raised by the identity client.

// InvalidLoginCredentialsError maps the provider's INVALID_LOGIN_CREDENTIALS
// code.
type InvalidLoginCredentialsError struct{}

func (e *InvalidLoginCredentialsError) Error() string {
	return "Wrong email or password."
}

// UnknownProviderError covers 5xx responses from the identity provider.
type UnknownProviderError struct {
	Status int
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("identity provider returned status %d", e.Status)
}

// ErrorDecodeError covers 4xx provider responses with an unmapped code.
type ErrorDecodeError struct {
	Code string
}

func (e *ErrorDecodeError) Error() string {
	return fmt.Sprintf("unrecognized identity provider error code %q", e.Code)
}
