// Package store persists task records. Two implementations satisfy the
// same contract: an in-memory map (the default) and a SQLite-backed store
// for deployments that want tasks to survive a restart.
package store

import (
	"context"
	"errors"

	"taskbot/internal/domain"
)

var ErrNotFound = errors.New("task not found")

type Store interface {
	// Create mints the next sequential id ("#1", "#2", ...) and inserts
	// the task under it. The mint and the insert are atomic so concurrent
	// creations can never collide or leave gaps.
	Create(ctx context.Context, t domain.Task) (string, error)
	// Save inserts the task at id, overwriting any existing record.
	Save(ctx context.Context, id string, t domain.Task) error
	Get(ctx context.Context, id string) (domain.Task, error)
	// GetAll returns the channel's tasks in insertion order.
	GetAll(ctx context.Context, channelID string) ([]domain.Task, error)
	GetCompleted(ctx context.Context, channelID string) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
