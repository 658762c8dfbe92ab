package auth

import "errors"

var (
	ErrMissingCredentials    = errors.New("missing credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrWrongPassword         = errors.New("wrong password")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrUserDisabled          = errors.New("user disabled")
	ErrEmailInUse            = errors.New("email already in use")
	ErrWeakPassword          = errors.New("weak password")
	ErrNotAdmin              = errors.New("not an admin")
	ErrReservedEmail         = errors.New("email reserved for admin accounts")
	ErrInvalidToken          = errors.New("invalid token")
	ErrFirebaseNotConfigured = errors.New("firebase is not configured")
)

// Message maps an auth error to the text shown on the sign-in forms.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Please enter email and password"
	case errors.Is(err, ErrUserNotFound):
		return "User not found. Please check your email."
	case errors.Is(err, ErrWrongPassword):
		return "Incorrect password. Please try again."
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email format."
	case errors.Is(err, ErrUserDisabled):
		return "User account is disabled."
	case errors.Is(err, ErrEmailInUse):
		return "Email is already in use."
	case errors.Is(err, ErrWeakPassword):
		return "Password should be at least 6 characters."
	case errors.Is(err, ErrReservedEmail):
		return "This email cannot be registered here."
	case errors.Is(err, ErrNotAdmin):
		return "Unauthorized - Not an admin"
	default:
		return "Login failed. Please try again."
	}
}
