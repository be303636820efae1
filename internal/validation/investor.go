package validation

import (
	"fmt"
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

var ValidInvestorType = map[string]bool{
	model.InvestorTypeIndividual:     true,
	model.InvestorTypeVentureCapital: true,
	model.InvestorTypeAngel:          true,
	model.InvestorTypeInstitutional:  true,
	model.InvestorTypeOther:          true,
}

func ValidateCreateInvestor(req request.CreateInvestorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "investor name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if req.InvestorType != "" && !ValidInvestorType[req.InvestorType] {
		errors["investorType"] = fmt.Sprintf("invalid investor type: %s", req.InvestorType)
	}

	if req.Website != "" && !validWebsite(req.Website) {
		errors["website"] = "please use a valid URL with http or https"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateInvestor(req request.UpdateInvestorRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "investor name is required"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.InvestorType != nil && !ValidInvestorType[*req.InvestorType] {
		errors["investorType"] = fmt.Sprintf("invalid investor type: %s", *req.InvestorType)
	}

	if req.Website != nil && *req.Website != "" && !validWebsite(*req.Website) {
		errors["website"] = "please use a valid URL with http or https"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
