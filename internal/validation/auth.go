package validation

import (
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
)

// Password length rules. Registration is stricter than a password change.
const (
	MinRegisterPasswordLength = 8
	MinNewPasswordLength      = 6
)

// ValidateRegister validates an account creation request.
//
// Required fields:
//   - name, email, password, confirm_password
//
// email must be well formed, password at least MinRegisterPasswordLength
// characters and equal to confirm_password.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !ValidEmail(NormalizeEmail(req.Email)) {
		errors["email"] = "invalid email"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	} else if len(req.Password) < MinRegisterPasswordLength {
		errors["password"] = "password must be at least 8 characters"
	}

	if req.ConfirmPassword == "" {
		errors["confirm_password"] = "confirm_password is required"
	} else if req.Password != req.ConfirmPassword {
		errors["confirm_password"] = "passwords do not match"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdateProfile(req request.UpdateProfileRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !ValidEmail(NormalizeEmail(req.Email)) {
		errors["email"] = "invalid email"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdatePassword(req request.UpdatePasswordRequest) error {
	errors := make(map[string]string)

	if req.CurrentPassword == "" {
		errors["current_password"] = "current_password is required"
	}

	if req.NewPassword == "" {
		errors["new_password"] = "new_password is required"
	} else if len(req.NewPassword) < MinNewPasswordLength {
		errors["new_password"] = "new_password must be at least 6 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
