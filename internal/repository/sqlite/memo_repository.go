package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carenote/internal/domain"
	"carenote/internal/repository"
)

const createMemosTable = `
CREATE TABLE IF NOT EXISTS memos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memos_owner ON memos(user_id, created_at);
`

type MemoRepository struct {
	db *sql.DB
}

func NewMemoRepository(db *sql.DB) repository.MemoRepository {
	return &MemoRepository{db: db}
}

func (r *MemoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMemosTable); err != nil {
		return fmt.Errorf("create memos table: %w", err)
	}
	return nil
}

func (r *MemoRepository) Create(ctx context.Context, memo *domain.Memo) (int64, error) {
	now := time.Now().UTC()
	memo.CreatedAt = now
	memo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO memos (user_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		memo.UserID,
		memo.Title,
		memo.Content,
		memo.CreatedAt,
		memo.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert memo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("memo last insert id: %w", err)
	}
	memo.ID = id
	return id, nil
}

func (r *MemoRepository) Get(ctx context.Context, id int64) (*domain.Memo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, content, created_at, updated_at
FROM memos
WHERE id = ?`,
		id,
	)
	return scanMemo(row)
}

// ListByOwner returns the owner's memos, newest first.
func (r *MemoRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Memo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, content, created_at, updated_at
FROM memos
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	defer rows.Close()

	memos := []domain.Memo{}
	for rows.Next() {
		var memo domain.Memo
		if err := rows.Scan(
			&memo.ID,
			&memo.UserID,
			&memo.Title,
			&memo.Content,
			&memo.CreatedAt,
			&memo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan memo: %w", err)
		}
		memos = append(memos, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memos: %w", err)
	}
	return memos, nil
}

// Update overwrites title and content in a single statement; updated_at
// advances, created_at and user_id are untouched.
func (r *MemoRepository) Update(ctx context.Context, memo *domain.Memo) error {
	memo.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE memos
SET title = ?, content = ?, updated_at = ?
WHERE id = ?`,
		memo.Title,
		memo.Content,
		memo.UpdatedAt,
		memo.ID,
	)
	if err != nil {
		return fmt.Errorf("update memo: %w", err)
	}
	return requireMemoRow(res, memo.ID)
}

func (r *MemoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	return requireMemoRow(res, id)
}

func (r *MemoRepository) DeleteByOwner(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete memos by owner: %w", err)
	}
	return nil
}

func requireMemoRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("memo %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanMemo(row interface {
	Scan(dest ...any) error
}) (*domain.Memo, error) {
	var memo domain.Memo
	if err := row.Scan(
		&memo.ID,
		&memo.UserID,
		&memo.Title,
		&memo.Content,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("memo: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan memo: %w", err)
	}
	return &memo, nil
}
