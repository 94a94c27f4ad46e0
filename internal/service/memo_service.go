package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"carenote/internal/domain"
	"carenote/internal/repository"
)

// maxTitleLength bounds memo titles, counted in characters.
const maxTitleLength = 255

// MemoService exposes memo lifecycle operations, each scoped to the acting
// user. A memo is visible and mutable only by its owner; there is no role
// based override and no sharing.
type MemoService interface {
	List(ctx context.Context, actorID int64) ([]domain.Memo, error)
	Create(ctx context.Context, actorID int64, title, content string) (*domain.Memo, error)
	Get(ctx context.Context, actorID, memoID int64) (*domain.Memo, error)
	Update(ctx context.Context, actorID, memoID int64, title, content string) (*domain.Memo, error)
	Delete(ctx context.Context, actorID, memoID int64) error
}

type memoService struct {
	memos repository.MemoRepository
}

func NewMemoService(memos repository.MemoRepository) MemoService {
	return &memoService{memos: memos}
}

// List returns all of the actor's memos, newest first.
func (s *memoService) List(ctx context.Context, actorID int64) ([]domain.Memo, error) {
	return s.memos.ListByOwner(ctx, actorID)
}

func (s *memoService) Create(ctx context.Context, actorID int64, title, content string) (*domain.Memo, error) {
	if err := validateMemoInput(title, content); err != nil {
		return nil, err
	}

	memo := &domain.Memo{
		UserID:  actorID,
		Title:   title,
		Content: content,
	}
	if _, err := s.memos.Create(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *memoService) Get(ctx context.Context, actorID, memoID int64) (*domain.Memo, error) {
	return s.ownedMemo(ctx, actorID, memoID)
}

// Update overwrites title and content atomically: on any failure path the
// stored memo keeps its prior fields and updated_at.
func (s *memoService) Update(ctx context.Context, actorID, memoID int64, title, content string) (*domain.Memo, error) {
	memo, err := s.ownedMemo(ctx, actorID, memoID)
	if err != nil {
		return nil, err
	}
	if err := validateMemoInput(title, content); err != nil {
		return nil, err
	}

	memo.Title = title
	memo.Content = content
	if err := s.memos.Update(ctx, memo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, err
	}
	return memo, nil
}

func (s *memoService) Delete(ctx context.Context, actorID, memoID int64) error {
	if _, err := s.ownedMemo(ctx, actorID, memoID); err != nil {
		return err
	}
	if err := s.memos.Delete(ctx, memoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemoNotFound
		}
		return err
	}
	return nil
}

// ownedMemo loads a memo and enforces the ownership rule. A memo owned by
// another user yields ErrForbidden, which deliberately reveals that the
// record exists; see DESIGN.md.
func (s *memoService) ownedMemo(ctx context.Context, actorID, memoID int64) (*domain.Memo, error) {
	memo, err := s.memos.Get(ctx, memoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, err
	}
	if memo.UserID != actorID {
		return nil, ErrForbidden
	}
	return memo, nil
}

func validateMemoInput(title, content string) error {
	verr := newValidationError()
	if strings.TrimSpace(title) == "" {
		verr.add("title", "title is required")
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		verr.add("title", "title must be at most 255 characters")
	}
	if strings.TrimSpace(content) == "" {
		verr.add("content", "content is required")
	}
	if verr.empty() {
		return nil
	}
	return verr
}
