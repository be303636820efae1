package validation

import (
	"fmt"
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

var ValidIPOStatus = map[string]bool{
	model.IPOStatusUpcoming:  true,
	model.IPOStatusOpen:      true,
	model.IPOStatusPast:      true,
	model.IPOStatusCancelled: true,
}

// NormalizeIPOStatus folds the legacy "active" spelling into "open".
func NormalizeIPOStatus(status string) string {
	if status == "active" {
		return model.IPOStatusOpen
	}
	return status
}

func ValidateCreateIPO(req request.CreateIPORequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.CompanyName) == "" {
		errors["companyName"] = "company name is required"
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "stock symbol is required"
	} else if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	if strings.TrimSpace(req.IpoDate) == "" {
		errors["ipoDate"] = "IPO date is required"
	} else if _, err := ParseTime(req.IpoDate); err != nil {
		errors["ipoDate"] = "valid IPO date is required"
	}

	if req.PriceRangeLow < 0 {
		errors["priceRangeLow"] = "price range low cannot be negative"
	}
	if req.PriceRangeHigh < 0 {
		errors["priceRangeHigh"] = "price range high cannot be negative"
	}
	if req.PriceRangeHigh > 0 && req.PriceRangeLow > req.PriceRangeHigh {
		errors["priceRangeLow"] = "price range low cannot exceed price range high"
	}
	if req.SharesOffered < 0 {
		errors["sharesOffered"] = "shares offered cannot be negative"
	}

	if req.Status != "" && !ValidIPOStatus[NormalizeIPOStatus(req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateIPO(req request.UpdateIPORequest) error {
	errors := make(map[string]string)

	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		errors["companyName"] = "company name is required"
	}

	if req.Symbol != nil {
		if strings.TrimSpace(*req.Symbol) == "" {
			errors["symbol"] = "stock symbol is required"
		} else if len(*req.Symbol) > 20 {
			errors["symbol"] = "symbol must be 20 characters or less"
		}
	}

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description is required"
	}

	if req.IpoDate != nil {
		if _, err := ParseTime(*req.IpoDate); err != nil {
			errors["ipoDate"] = "valid IPO date is required"
		}
	}

	if req.PriceRangeLow != nil && *req.PriceRangeLow < 0 {
		errors["priceRangeLow"] = "price range low cannot be negative"
	}
	if req.PriceRangeHigh != nil && *req.PriceRangeHigh < 0 {
		errors["priceRangeHigh"] = "price range high cannot be negative"
	}
	if req.SharesOffered != nil && *req.SharesOffered < 0 {
		errors["sharesOffered"] = "shares offered cannot be negative"
	}

	if req.Status != nil && !ValidIPOStatus[NormalizeIPOStatus(*req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", *req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
