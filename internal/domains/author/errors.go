package author

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")

	// ErrInvalidDateOfBirth wraps dob values that fail to parse.
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
)

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrInvalidDateOfBirth):
		return 400
	default:
		return 500
	}
}
