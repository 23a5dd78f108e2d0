package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBook(t *testing.T) {
	good := BookRecord{ID: 1, Title: "Dune", AvailableCopies: 1, TotalCopies: 2}
	require.NoError(t, ValidateBook(good))

	tests := []struct {
		name  string
		edit  func(*BookRecord)
		field string
	}{
		{"zero id", func(b *BookRecord) { b.ID = 0 }, "id"},
		{"missing title", func(b *BookRecord) { b.Title = "" }, "title"},
		{"negative copies", func(b *BookRecord) { b.AvailableCopies = -1 }, "availableCopies"},
		{"more available than total", func(b *BookRecord) { b.AvailableCopies = 3 }, "totalCopies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := good
			tt.edit(&b)
			err := ValidateBook(b)
			require.ErrorIs(t, err, ErrInvalidRecord)
			var rerr *RecordError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.field, rerr.Field)
		})
	}
}

func TestValidateRegisterForm(t *testing.T) {
	err := ValidateForm(RegisterForm{Email: "not-an-email", Password: "abc", ConfirmPassword: "abd"})
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be a valid email address", fe.Fields["email"])
	assert.Equal(t, "must be at least 6 characters", fe.Fields["password"])
	assert.Equal(t, "must match Password", fe.Fields["confirmPassword"])

	require.NoError(t, ValidateForm(RegisterForm{Email: "a@b.co", Password: "secret", ConfirmPassword: "secret"}))
}

func TestFormErrorMessageIsSorted(t *testing.T) {
	err := ValidateForm(LoginForm{})
	require.Error(t, err)
	assert.Equal(t, "email is required; password is required", err.Error())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "reader@example.com", NormalizeEmail("  Reader@Example.COM "))
}
