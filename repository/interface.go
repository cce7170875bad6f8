package repository

import (
	"context"
	"time"

	"bodyshop-work-order/models"
)

// SessionRepositoryInterface defines the contract for work order session storage
type SessionRepositoryInterface interface {
	Create(ctx context.Context) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, id string, fn Transition) (Session, error)
	Delete(ctx context.Context, id string) error
	ExpireIdle(ttl time.Duration) int
}

// ArchiveRepositoryInterface defines the contract for the issued work order log
type ArchiveRepositoryInterface interface {
	Enabled() bool
	Record(ctx context.Context, entry *models.IssuedWorkOrder) error
	ListRecent(ctx context.Context, limit int) ([]models.IssuedWorkOrder, error)
}
