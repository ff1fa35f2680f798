package services

import (
	"context"
	"time"

	"clockit/internal/domain"
)

// Clock returns the current instant. Every service operation reads it once.
type Clock func() time.Time

// TaskService handles task storage and lifecycle workflows.
// Lookups return a NotFound error for absent labels; storage faults propagate unchanged.
type TaskService interface {
	// Storage operations
	Create(ctx context.Context, label string) (int64, error)
	Find(ctx context.Context, label string) (*domain.Task, error)
	FindByState(ctx context.Context, code string) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Exists(ctx context.Context, label string) (bool, error)
	SetState(ctx context.Context, label string, shortCode string) error
	Rename(ctx context.Context, label string, newLabel string) error
	Delete(ctx context.Context, label string) error
	CleanExpired(ctx context.Context, retention time.Duration) (int64, error)

	// Lifecycle workflows
	Start(ctx context.Context, label string) (*domain.Task, bool, error)
	Pause(ctx context.Context, label string) (*domain.Task, error)
	End(ctx context.Context, label string) (*domain.Task, error)

	// Now is the instant the service would stamp; callers use it to render elapsed times.
	Now() time.Time
}
