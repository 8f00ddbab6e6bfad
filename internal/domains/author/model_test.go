package author

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuthorRequestValidate(t *testing.T) {
	req := CreateAuthorRequest{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1980-01-01",
	}
	assert.NoError(t, req.Validate())

	req.FirstName = ""
	err := req.Validate()
	require.Error(t, err)

	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "firstName")
}

func TestCreateAuthorRequestDOB(t *testing.T) {
	tests := []struct {
		name    string
		dob     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "plain date",
			dob:  "1980-01-01",
			want: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 timestamp",
			dob:  "1980-01-01T00:00:00Z",
			want: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			dob:     "first of january",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateAuthorRequest{FirstName: "J", LastName: "D", DateOfBirth: tt.dob}
			got, err := req.DOB()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateOfBirth)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestUpdateAuthorRequestApply(t *testing.T) {
	a := Author{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	last := "Smith"
	req := UpdateAuthorRequest{LastName: &last}
	require.NoError(t, req.Apply(&a))

	assert.Equal(t, "John", a.FirstName, "fields not present in the patch must stay untouched")
	assert.Equal(t, "Smith", a.LastName)

	bad := "not-a-date"
	req = UpdateAuthorRequest{DateOfBirth: &bad}
	assert.ErrorIs(t, req.Apply(&a), ErrInvalidDateOfBirth)
}

func TestUpdateAuthorRequestValidateRejectsEmpty(t *testing.T) {
	empty := ""
	req := UpdateAuthorRequest{FirstName: &empty}
	assert.Error(t, req.Validate())

	req = UpdateAuthorRequest{}
	assert.NoError(t, req.Validate(), "an empty patch is a valid no-op")
}
