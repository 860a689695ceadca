package memstore

import (
	"context"
	"time"

	"github.com/adpulse/adpulse-api/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Auth — port.AuthStore
// ============================================================

func (s *Store) StoreRefreshToken(ctx context.Context, brandID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "Memstore.StoreRefreshToken")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshTokens[tokenHash] = &domain.RefreshToken{
		ID:        uuid.NewString(),
		BrandID:   brandID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (s *Store) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Memstore.GetRefreshToken")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.refreshTokens[tokenHash]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "refresh token", ID: "redacted"}
	}
	tCopy := *t
	return &tCopy, nil
}

func (s *Store) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "Memstore.RevokeRefreshToken")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.refreshTokens[tokenHash]; ok {
		t.Revoked = true
	}
	return nil
}

func (s *Store) RevokeAllRefreshTokens(ctx context.Context, brandID string) error {
	ctx, span := tracer.Start(ctx, "Memstore.RevokeAllRefreshTokens")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.refreshTokens {
		if t.BrandID == brandID {
			t.Revoked = true
		}
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, brandID, passwordHash string) error {
	ctx, span := tracer.Start(ctx, "Memstore.UpdatePassword")
	defer span.End()

	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.brands[brandID]
	if !ok {
		return &domain.ErrNotFound{Resource: "brand", ID: brandID}
	}
	b.PasswordHash = passwordHash
	return nil
}
