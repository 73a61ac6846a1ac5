// Package usecase exposes the platform comparison listing.
package usecase

import (
	"context"

	"finance_backend/internal/feature/platforms/domain/entity"
)

// PlatformRepository is the catalog the usecase reads from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PlatformRepository interface {
	List(ctx context.Context) ([]entity.Platform, error)
}

// platformUsecase lists investment platforms for comparison.
type platformUsecase struct {
	repo PlatformRepository
}

// NewPlatformUsecase creates a new platformUsecase.
func NewPlatformUsecase(repo PlatformRepository) *platformUsecase {
	return &platformUsecase{repo: repo}
}

// List returns the full comparison catalog.
func (u *platformUsecase) List(ctx context.Context) ([]entity.Platform, error) {
	return u.repo.List(ctx)
}
