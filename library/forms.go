package library

import "strings"

// LoginForm is what the login command collects.
type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is what the register command collects.
type RegisterForm struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// CreateUserForm is the admin form for adding an account.
type CreateUserForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

// NormalizeEmail trims and lower-cases an address the way the backend does.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
