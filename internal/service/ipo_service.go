package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/request"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/events"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/repository"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// IPOService handles IPO business logic. Reads go through the cache-aside
// layer; mutations invalidate affected keys and emit the push signal.
type IPOService struct {
	ipoRepo  *repository.IPORepository
	cache    *cache.Store
	notifier events.Notifier
}

// NewIPOService creates a new IPOService with the provided dependencies.
func NewIPOService(ipoRepo *repository.IPORepository, store *cache.Store, notifier events.Notifier) *IPOService {
	return &IPOService{
		ipoRepo:  ipoRepo,
		cache:    store,
		notifier: notifier,
	}
}

// ListIPOs retrieves IPOs sorted ascending by date, optionally filtered by
// status. Returns the list and whether it was served from cache.
func (s *IPOService) ListIPOs(status string) ([]model.IPO, cache.Source, error) {
	status = validation.NormalizeIPOStatus(status)

	key := cache.KeyAllIPOs
	if status != "" {
		key = cache.IPOStatusKey(status)
	}

	return cache.Fetch(s.cache, key, 0, func() ([]model.IPO, error) {
		return s.ipoRepo.GetIPOs(status)
	})
}

// ListUpcomingIPOs retrieves the upcoming IPO listing under its dedicated
// cache key.
func (s *IPOService) ListUpcomingIPOs() ([]model.IPO, cache.Source, error) {
	return cache.Fetch(s.cache, cache.KeyUpcomingIPOs, 0, func() ([]model.IPO, error) {
		return s.ipoRepo.GetIPOs(model.IPOStatusUpcoming)
	})
}

// GetIPO retrieves a single IPO by ID through the cache.
func (s *IPOService) GetIPO(id string) (model.IPO, cache.Source, error) {
	return cache.Fetch(s.cache, cache.IPOKey(id), 0, func() (model.IPO, error) {
		return s.ipoRepo.GetIPO(id)
	})
}

// CreateIPO persists a new IPO, invalidates the list caches and notifies
// connected clients.
func (s *IPOService) CreateIPO(ctx context.Context, req request.CreateIPORequest) (model.IPO, error) {
	ipoDate, err := validation.ParseTime(req.IpoDate)
	if err != nil {
		return model.IPO{}, err
	}

	status := validation.NormalizeIPOStatus(req.Status)
	if status == "" {
		status = model.IPOStatusUpcoming
	}

	ipo := model.IPO{
		ID:             uuid.New().String(),
		CompanyName:    strings.TrimSpace(req.CompanyName),
		Symbol:         strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Description:    req.Description,
		IPODate:        ipoDate,
		PriceRangeLow:  req.PriceRangeLow,
		PriceRangeHigh: req.PriceRangeHigh,
		SharesOffered:  req.SharesOffered,
		Status:         status,
		CreatedAt:      time.Now(),
	}

	if err := s.ipoRepo.InsertIPO(ctx, &ipo); err != nil {
		return model.IPO{}, err
	}

	cache.InvalidateIPOs(s.cache, "")
	s.notifier.Notify(events.EventIPOUpdate, nil)
	return ipo, nil
}

// UpdateIPO applies a partial update to an existing IPO. The existence
// check runs first so a missing ID surfaces as not-found rather than a
// silent no-op.
func (s *IPOService) UpdateIPO(ctx context.Context, id string, req request.UpdateIPORequest) (model.IPO, error) {
	ipo, err := s.ipoRepo.GetIPO(id)
	if err != nil {
		return model.IPO{}, err
	}

	if req.CompanyName != nil {
		ipo.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Symbol != nil {
		ipo.Symbol = strings.ToUpper(strings.TrimSpace(*req.Symbol))
	}
	if req.Description != nil {
		ipo.Description = *req.Description
	}
	if req.IpoDate != nil {
		ipoDate, err := validation.ParseTime(*req.IpoDate)
		if err != nil {
			return model.IPO{}, err
		}
		ipo.IPODate = ipoDate
	}
	if req.PriceRangeLow != nil {
		ipo.PriceRangeLow = *req.PriceRangeLow
	}
	if req.PriceRangeHigh != nil {
		ipo.PriceRangeHigh = *req.PriceRangeHigh
	}
	if req.SharesOffered != nil {
		ipo.SharesOffered = *req.SharesOffered
	}
	if req.Status != nil {
		ipo.Status = validation.NormalizeIPOStatus(*req.Status)
	}

	if err := s.ipoRepo.UpdateIPO(ctx, &ipo); err != nil {
		return model.IPO{}, err
	}

	cache.InvalidateIPOs(s.cache, id)
	s.notifier.Notify(events.EventIPOUpdate, nil)
	return ipo, nil
}

// DeleteIPO removes an IPO after confirming it exists, then invalidates
// caches and notifies.
func (s *IPOService) DeleteIPO(ctx context.Context, id string) error {
	if _, err := s.ipoRepo.GetIPO(id); err != nil {
		return err
	}

	if err := s.ipoRepo.DeleteIPO(ctx, id); err != nil {
		return err
	}

	cache.InvalidateIPOs(s.cache, id)
	s.notifier.Notify(events.EventIPOUpdate, nil)
	return nil
}
