package repository

import (
	"context"

	"carenote/internal/domain"
)

// MemoRepository exposes persistence operations for Memo records.
type MemoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, memo *domain.Memo) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Memo, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Memo, error)
	Update(ctx context.Context, memo *domain.Memo) error
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, userID int64) error
}
