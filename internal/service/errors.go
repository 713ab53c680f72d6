package service

import "errors"

// ValidationError reports input that was rejected before reaching storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var (
	// ErrEmailRequired is returned when a user is created without an email.
	ErrEmailRequired = NewValidationError("email", "users must have an email address")

	// ErrEmailTaken is returned when the normalized email already belongs to a user.
	ErrEmailTaken = NewValidationError("email", "user with this email already exists")

	// ErrInvalidCredentials is returned when authentication fails for any reason.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")

	// ErrInvalidToken is returned for malformed, expired or forged tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnsupportedImage is returned when an upload is not an image.
	ErrUnsupportedImage = NewValidationError("image", "upload a valid image")
)
