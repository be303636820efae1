package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
)

// InvestorService handles investor business logic.
type InvestorService struct {
	investorRepo *repository.InvestorRepository
	cache        *cache.Store
}

// NewInvestorService creates a new InvestorService with the provided dependencies.
func NewInvestorService(investorRepo *repository.InvestorRepository, store *cache.Store) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
		cache:        store,
	}
}

// ListInvestors retrieves all investors through the cache.
func (s *InvestorService) ListInvestors() ([]model.Investor, cache.Source, error) {
	return cache.Fetch(s.cache, cache.KeyAllInvestors, 0, func() ([]model.Investor, error) {
		return s.investorRepo.GetInvestors()
	})
}

// GetInvestor retrieves a single investor by ID through the cache.
func (s *InvestorService) GetInvestor(id string) (model.Investor, cache.Source, error) {
	return cache.Fetch(s.cache, cache.InvestorKey(id), 0, func() (model.Investor, error) {
		return s.investorRepo.GetInvestor(id)
	})
}

// CreateInvestor persists a new investor and invalidates the list cache.
func (s *InvestorService) CreateInvestor(ctx context.Context, req request.CreateInvestorRequest) (model.Investor, error) {
	investorType := req.InvestorType
	if investorType == "" {
		investorType = model.InvestorTypeOther
	}

	investor := model.Investor{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		InvestorType: investorType,
		Description:  req.Description,
		Website:      req.Website,
		CreatedAt:    time.Now(),
	}

	if err := s.investorRepo.InsertInvestor(ctx, &investor); err != nil {
		return model.Investor{}, err
	}

	cache.InvalidateInvestors(s.cache, "")
	return investor, nil
}

// UpdateInvestor applies a partial update after confirming the investor exists.
func (s *InvestorService) UpdateInvestor(ctx context.Context, id string, req request.UpdateInvestorRequest) (model.Investor, error) {
	investor, err := s.investorRepo.GetInvestor(id)
	if err != nil {
		return model.Investor{}, err
	}

	if req.Name != nil {
		investor.Name = strings.TrimSpace(*req.Name)
	}
	if req.InvestorType != nil {
		investor.InvestorType = *req.InvestorType
	}
	if req.Description != nil {
		investor.Description = *req.Description
	}
	if req.Website != nil {
		investor.Website = *req.Website
	}

	if err := s.investorRepo.UpdateInvestor(ctx, &investor); err != nil {
		return model.Investor{}, err
	}

	cache.InvalidateInvestors(s.cache, id)
	return investor, nil
}

// DeleteInvestor removes an investor after confirming it exists.
func (s *InvestorService) DeleteInvestor(ctx context.Context, id string) error {
	if _, err := s.investorRepo.GetInvestor(id); err != nil {
		return err
	}

	if err := s.investorRepo.DeleteInvestor(ctx, id); err != nil {
		return err
	}

	cache.InvalidateInvestors(s.cache, id)
	return nil
}
