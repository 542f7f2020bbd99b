package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/taskrange/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListBySource(ctx context.Context, source string) ([]*domain.Task, error)
	// List returns every task ordered by import time. Tasks with no temporal
	// properties are skipped unless includeUndated is set.
	List(ctx context.Context, includeUndated bool) ([]*domain.Task, error)
	DeleteBySource(ctx context.Context, source string) (int, error)
}
