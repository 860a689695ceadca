package service

import (
	"context"
	"strings"

	"github.com/adpulse/adpulse-api/internal/domain"
	"github.com/adpulse/adpulse-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var accountTracer = otel.Tracer("service/account")

// AccountService reads and updates the brand account profile.
type AccountService struct {
	brands port.BrandStore
	logger *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(brands port.BrandStore, logger *zap.Logger) *AccountService {
	return &AccountService{brands: brands, logger: logger}
}

func (s *AccountService) GetBrand(ctx context.Context, brandID string) (*domain.Brand, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.GetBrand")
	defer span.End()

	return s.brands.GetBrand(ctx, brandID)
}

func (s *AccountService) UpdateBrand(ctx context.Context, brandID string, update *domain.BrandUpdate) (*domain.Brand, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.UpdateBrand")
	defer span.End()

	if update.CompanyName == nil && update.Email == nil {
		return nil, &domain.ErrValidation{Field: "body", Message: "no fields to update"}
	}
	if update.CompanyName != nil && strings.TrimSpace(*update.CompanyName) == "" {
		return nil, &domain.ErrValidation{Field: "companyName", Message: "company name cannot be empty"}
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if !strings.Contains(email, "@") {
			return nil, &domain.ErrValidation{Field: "email", Message: "a valid email is required"}
		}
		update.Email = &email
	}

	brand, err := s.brands.UpdateBrand(ctx, brandID, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("brand profile updated", zap.String("brand_id", brandID))
	return brand, nil
}
