package memstore

import (
	"context"
	"strings"

	"github.com/adpulse/adpulse-api/internal/domain"
)

// ============================================================
// Brands — port.BrandStore
// ============================================================

func (s *Store) GetBrand(ctx context.Context, brandID string) (*domain.Brand, error) {
	ctx, span := tracer.Start(ctx, "Memstore.GetBrand")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.brands[brandID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "brand", ID: brandID}
	}
	return copyBrand(b), nil
}

func (s *Store) GetBrandByEmail(ctx context.Context, email string) (*domain.Brand, error) {
	ctx, span := tracer.Start(ctx, "Memstore.GetBrandByEmail")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.brands {
		if strings.EqualFold(b.Email, email) {
			return copyBrand(b), nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "brand", ID: email}
}

func (s *Store) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	ctx, span := tracer.Start(ctx, "Memstore.CreateBrand")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.brands {
		if strings.EqualFold(b.Email, brand.Email) {
			return &domain.ErrConflict{Message: "email already registered"}
		}
	}
	s.brands[brand.ID] = copyBrand(brand)
	return nil
}

func (s *Store) UpdateBrand(ctx context.Context, brandID string, update *domain.BrandUpdate) (*domain.Brand, error) {
	ctx, span := tracer.Start(ctx, "Memstore.UpdateBrand")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.brands[brandID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "brand", ID: brandID}
	}
	if update.Email != nil && !strings.EqualFold(*update.Email, b.Email) {
		for id, other := range s.brands {
			if id != brandID && strings.EqualFold(other.Email, *update.Email) {
				return nil, &domain.ErrConflict{Message: "email already registered"}
			}
		}
		b.Email = *update.Email
	}
	if update.CompanyName != nil {
		b.CompanyName = *update.CompanyName
	}
	return copyBrand(b), nil
}
