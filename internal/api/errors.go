package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/factory"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/Nivlac17/jwt-pizza-service/internal/service/auth"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/go-playground/validator/v10"
)

// Messages shared by several handlers.
const (
	msgUnauthorized     = "unauthorized"
	msgUnexpected       = "An unexpected error occurred"
	msgFactoryFailure   = "Failed to fulfill order at factory"
	msgInvalidBody      = "invalid request body"
	msgRegisterRequired = "name, email, and password are required"
)

// clientSafeErrors are domain validation errors whose text may be returned
// to clients as is.
var clientSafeErrors = []error{
	domain.ErrEmptyName,
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyFranchiseName,
	domain.ErrEmptyStoreName,
	domain.ErrEmptyMenuTitle,
	domain.ErrInvalidMenuPrice,
	domain.ErrOrderNoItems,
	domain.ErrOrderMissingStore,
	domain.ErrOrderInvalidQuantity,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var accessErr *domain.AccessError

	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrSessionRevoked),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.As(err, &accessErr), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Checked before not-found: an unknown admin email is a bad request.
	case errors.Is(err, service.ErrUnknownFranchiseAdmin):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error, including factory.ErrFulfillment
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var accessErr *domain.AccessError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "unknown user"

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrSessionRevoked):
		return msgUnauthorized

	// The refusal message is written for clients.
	case errors.As(err, &accessErr):
		return accessErr.Message

	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"

	case errors.Is(err, service.ErrUnknownFranchiseAdmin):
		return service.ErrUnknownFranchiseAdmin.Error()

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, store.ErrFranchiseNotFound):
		return "franchise not found"
	case errors.Is(err, store.ErrStoreNotFound):
		return "store not found"
	case errors.Is(err, store.ErrMenuItemNotFound):
		return "menu item not found"
	case errors.Is(err, store.ErrNotFound):
		return "not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "already exists"

	// Bad request errors
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, domain.ErrValidation):
		for _, safe := range clientSafeErrors {
			if errors.Is(err, safe) {
				return safe.Error()
			}
		}
		return "invalid request"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid id"
	case errors.Is(err, store.ErrInvalidEntity):
		return "invalid entity data"

	case errors.Is(err, factory.ErrFulfillment):
		return msgFactoryFailure

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns validator failures into a short message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	if msg := getValidationTagMessage(fe.Tag()); msg != "" {
		return fmt.Sprintf("invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("invalid %s", field)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "dive":
		return "invalid item"
	default:
		return ""
	}
}

// HandleAPIError writes the status and safe message mapped from err. When
// fallback is set it replaces the generic message of unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == msgUnexpected && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// isMissingField reports whether a validation failure includes a missing
// required field.
func isMissingField(err error) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

// HandleValidationError writes a 400 for a request body that failed
// struct validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}
