package author

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Author is the domain entity. The id is generated at creation and
// never changes; ImageKey is the object-storage key backing ImageURL
// and stays internal.
type Author struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	DateOfBirth time.Time `json:"dob" db:"dob"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	ImageKey    string    `json:"-" db:"image_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// dob accepts a plain date or a full RFC 3339 timestamp.
var dobLayouts = []string{"2006-01-02", time.RFC3339}

func parseDOB(value string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDateOfBirth, value)
}

// CreateAuthorRequest - POST /v1/authors (multipart form)
type CreateAuthorRequest struct {
	FirstName   string `form:"firstName" json:"firstName"`
	LastName    string `form:"lastName" json:"lastName"`
	DateOfBirth string `form:"dob" json:"dob"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&r.LastName, validation.Required.Error("last name is required")),
		validation.Field(&r.DateOfBirth, validation.Required.Error("date of birth is required")),
	)
}

// DOB parses the submitted date of birth.
func (r CreateAuthorRequest) DOB() (time.Time, error) {
	return parseDOB(r.DateOfBirth)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// Only non-nil fields are applied (partial update); identifiers and
// relations are never touched.
type UpdateAuthorRequest struct {
	FirstName   *string `form:"firstName" json:"firstName"`
	LastName    *string `form:"lastName" json:"lastName"`
	DateOfBirth *string `form:"dob" json:"dob"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty.Error("first name must not be empty")),
		validation.Field(&r.LastName, validation.NilOrNotEmpty.Error("last name must not be empty")),
		validation.Field(&r.DateOfBirth, validation.NilOrNotEmpty.Error("date of birth must not be empty")),
	)
}

// Apply copies the supplied fields onto the entity.
func (r UpdateAuthorRequest) Apply(a *Author) error {
	if r.FirstName != nil {
		a.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		a.LastName = *r.LastName
	}
	if r.DateOfBirth != nil {
		dob, err := parseDOB(*r.DateOfBirth)
		if err != nil {
			return err
		}
		a.DateOfBirth = dob
	}
	return nil
}
