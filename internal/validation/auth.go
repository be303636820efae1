package validation

import (
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !validEmail(req.Email) {
		errors["email"] = "please include a valid email"
	}

	if len(req.Password) < 6 {
		errors["password"] = "password must be 6 or more characters"
	}

	if req.Role != "" && req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		errors["role"] = "role must be user or admin"
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
	} else if !validEmail(req.Email) {
		errors["email"] = "please include a valid email"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
