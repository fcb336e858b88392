package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/service/auth"
)

// errorStatus maps domain and auth errors to responses. The first match
// wins, so more specific errors come first.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	{auth.ErrExpiredRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	{auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid refresh token"},
	{auth.ErrTokenNotYetValid, http.StatusUnauthorized, "Invalid token"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "Not found"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "Email already registered"},
	{domain.ErrDuplicateProfile, http.StatusConflict, "Provider profile already exists"},
	{domain.ErrDuplicateReview, http.StatusConflict, "Booking already reviewed"},
	{domain.ErrInvalidTransition, http.StatusConflict, "Invalid booking status transition"},
	{domain.ErrInvalidState, http.StatusConflict, "Booking is not completed"},
	{domain.ErrConflict, http.StatusConflict, "Conflicting request, please retry"},
	{domain.ErrProviderUnverified, http.StatusUnprocessableEntity, "Provider is not verified"},
	{domain.ErrInvalidSchedule, http.StatusBadRequest, "Booking time must be in the future"},
	{domain.ErrInvalidRating, http.StatusBadRequest, "Rating must be between 1 and 5"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
	{domain.ErrValidation, http.StatusBadRequest, "Validation error"},
}

// MapErrorToStatusCode returns the HTTP status for err. Unknown errors are 500.
func MapErrorToStatusCode(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes the error's own text, except for domain validation errors whose
// field and message are authored by this codebase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.message
		}
	}
	return "An unexpected error occurred"
}

// HandleAPIError writes the mapped response for err and logs the details.
// fallback replaces the generic message for 500s when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden || status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator output into "Invalid <field>:
// <reason>" for the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small or too short"
	case "max", "lte":
		return "too large or too long"
	case "oneof":
		return "invalid value"
	case "url":
		return "invalid URL"
	case "uuid":
		return "invalid ID"
	default:
		return "validation failed"
	}
}
