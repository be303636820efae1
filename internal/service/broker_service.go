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

// BrokerService handles broker business logic, including the comparison
// read used by the frontend's side-by-side view.
type BrokerService struct {
	brokerRepo *repository.BrokerRepository
	cache      *cache.Store
}

// NewBrokerService creates a new BrokerService with the provided dependencies.
func NewBrokerService(brokerRepo *repository.BrokerRepository, store *cache.Store) *BrokerService {
	return &BrokerService{
		brokerRepo: brokerRepo,
		cache:      store,
	}
}

// ListBrokers retrieves all brokers through the cache.
func (s *BrokerService) ListBrokers() ([]model.Broker, cache.Source, error) {
	return cache.Fetch(s.cache, cache.KeyAllBrokers, 0, func() ([]model.Broker, error) {
		return s.brokerRepo.GetBrokers()
	})
}

// GetBroker retrieves a single broker by ID through the cache.
func (s *BrokerService) GetBroker(id string) (model.Broker, cache.Source, error) {
	return cache.Fetch(s.cache, cache.BrokerKey(id), 0, func() (model.Broker, error) {
		return s.brokerRepo.GetBroker(id)
	})
}

// CompareBrokers fetches the requested broker set for comparison. The result
// is a derived projection cached under a shorter TTL; formatting is left to
// the caller.
func (s *BrokerService) CompareBrokers(ids []string) ([]model.Broker, cache.Source, error) {
	key := cache.BrokerCompareKey(ids)
	return cache.Fetch(s.cache, key, cache.CompareTTL, func() ([]model.Broker, error) {
		return s.brokerRepo.GetBrokersByIDs(ids)
	})
}

// CreateBroker persists a new broker and invalidates the list cache.
func (s *BrokerService) CreateBroker(ctx context.Context, req request.CreateBrokerRequest) (model.Broker, error) {
	broker := model.Broker{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Website:     req.Website,
		Fees:        req.Fees,
		Rating:      req.Rating,
		Features:    req.Features,
		CreatedAt:   time.Now(),
	}
	if broker.Features == nil {
		broker.Features = []string{}
	}

	if err := s.brokerRepo.InsertBroker(ctx, &broker); err != nil {
		return model.Broker{}, err
	}

	cache.InvalidateBrokers(s.cache, "")
	return broker, nil
}

// UpdateBroker applies a partial update after confirming the broker exists.
func (s *BrokerService) UpdateBroker(ctx context.Context, id string, req request.UpdateBrokerRequest) (model.Broker, error) {
	broker, err := s.brokerRepo.GetBroker(id)
	if err != nil {
		return model.Broker{}, err
	}

	if req.Name != nil {
		broker.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		broker.Description = *req.Description
	}
	if req.Website != nil {
		broker.Website = *req.Website
	}
	if req.Fees != nil {
		broker.Fees = *req.Fees
	}
	if req.Rating != nil {
		broker.Rating = *req.Rating
	}
	if req.Features != nil {
		broker.Features = *req.Features
	}

	if err := s.brokerRepo.UpdateBroker(ctx, &broker); err != nil {
		return model.Broker{}, err
	}

	cache.InvalidateBrokers(s.cache, id)
	return broker, nil
}

// DeleteBroker removes a broker after confirming it exists.
func (s *BrokerService) DeleteBroker(ctx context.Context, id string) error {
	if _, err := s.brokerRepo.GetBroker(id); err != nil {
		return err
	}

	if err := s.brokerRepo.DeleteBroker(ctx, id); err != nil {
		return err
	}

	cache.InvalidateBrokers(s.cache, id)
	return nil
}
