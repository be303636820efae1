package validation

import (
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
)

func ValidateCreateBroker(req request.CreateBrokerRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "broker name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	if req.Website != "" && !validWebsite(req.Website) {
		errors["website"] = "please use a valid URL with http or https"
	}

	if req.Rating < 0 || req.Rating > 5 {
		errors["rating"] = "rating must be between 0 and 5"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateBroker(req request.UpdateBrokerRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "broker name is required"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description is required"
	}

	if req.Website != nil && *req.Website != "" && !validWebsite(*req.Website) {
		errors["website"] = "please use a valid URL with http or https"
	}

	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		errors["rating"] = "rating must be between 0 and 5"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
