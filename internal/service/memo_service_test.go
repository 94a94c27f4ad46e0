package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carenote/internal/domain"
	"carenote/internal/repository"
)

// memoStore is an in-memory MemoRepository with a deterministic clock that
// advances one second per write.
type memoStore struct {
	memos  map[int64]domain.Memo
	nextID int64
	now    time.Time
	err    error
}

func newMemoStore() *memoStore {
	return &memoStore{
		memos:  map[int64]domain.Memo{},
		nextID: 1,
		now:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memoStore) Init(ctx context.Context) error { return m.err }

func (m *memoStore) Create(ctx context.Context, memo *domain.Memo) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	now := m.tick()
	memo.ID = m.nextID
	memo.CreatedAt = now
	memo.UpdatedAt = now
	m.nextID++
	m.memos[memo.ID] = *memo
	return memo.ID, nil
}

func (m *memoStore) Get(ctx context.Context, id int64) (*domain.Memo, error) {
	if m.err != nil {
		return nil, m.err
	}
	memo, ok := m.memos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &memo, nil
}

func (m *memoStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Memo, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Memo
	for id := m.nextID - 1; id >= 1; id-- {
		if memo, ok := m.memos[id]; ok && memo.UserID == userID {
			out = append(out, memo)
		}
	}
	return out, nil
}

func (m *memoStore) Update(ctx context.Context, memo *domain.Memo) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.memos[memo.ID]; !ok {
		return repository.ErrNotFound
	}
	memo.UpdatedAt = m.tick()
	m.memos[memo.ID] = *memo
	return nil
}

func (m *memoStore) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.memos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.memos, id)
	return nil
}

func (m *memoStore) DeleteByOwner(ctx context.Context, userID int64) error {
	for id, memo := range m.memos {
		if memo.UserID == userID {
			delete(m.memos, id)
		}
	}
	return nil
}

func TestMemoCreateThenGetRoundTrip(t *testing.T) {
	svc := NewMemoService(newMemoStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Follow-up", "Check vitals at 3pm")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, 42, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Follow-up", got.Title)
	assert.Equal(t, "Check vitals at 3pm", got.Content)
	assert.Equal(t, int64(42), got.UserID)
}

func TestMemoCreateValidation(t *testing.T) {
	store := newMemoStore()
	svc := NewMemoService(store)
	ctx := context.Background()

	longTitle := make([]rune, maxTitleLength+1)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	cases := []struct {
		name    string
		title   string
		content string
		fields  []string
	}{
		{"empty title", "", "content", []string{"title"}},
		{"blank title", "   ", "content", []string{"title"}},
		{"title too long", string(longTitle), "content", []string{"title"}},
		{"empty content", "title", "", []string{"content"}},
		{"both empty", "", "", []string{"title", "content"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tc.title, tc.content)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tc.fields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tc.fields))
		})
	}

	assert.Empty(t, store.memos, "nothing persisted on validation failure")
}

func TestMemoTitleAtLimitAccepted(t *testing.T) {
	svc := NewMemoService(newMemoStore())

	title := make([]rune, maxTitleLength)
	for i := range title {
		title[i] = 'é' // multibyte; the limit counts characters, not bytes
	}
	_, err := svc.Create(context.Background(), 1, string(title), "content")
	require.NoError(t, err)
}

func TestMemoOwnershipRejectsOtherUsers(t *testing.T) {
	store := newMemoStore()
	svc := NewMemoService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Follow-up", "Check vitals at 3pm")
	require.NoError(t, err)
	before := store.memos[created.ID]

	_, err = svc.Get(ctx, 7, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, 7, created.ID, "hijacked", "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, 7, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.Equal(t, before, store.memos[created.ID], "memo unmodified after denied operations")
}

func TestMemoNotFound(t *testing.T) {
	svc := NewMemoService(newMemoStore())
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrMemoNotFound)

	_, err = svc.Update(ctx, 1, 99, "title", "content")
	assert.ErrorIs(t, err, ErrMemoNotFound)

	err = svc.Delete(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrMemoNotFound)
}

func TestMemoListScopedToOwnerNewestFirst(t *testing.T) {
	svc := NewMemoService(newMemoStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, "first", "a")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "other user", "b")
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, "second", "c")
	require.NoError(t, err)

	memos, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, memos, 2)
	assert.Equal(t, second.ID, memos[0].ID, "newest first")
	assert.Equal(t, first.ID, memos[1].ID)
	for _, memo := range memos {
		assert.Equal(t, int64(1), memo.UserID)
	}

	memos, err = svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, memos)
}

func TestMemoUpdateAtomicOnValidationFailure(t *testing.T) {
	store := newMemoStore()
	svc := NewMemoService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "original", "original content")
	require.NoError(t, err)
	before := store.memos[created.ID]

	_, err = svc.Update(ctx, 1, created.ID, "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	after := store.memos[created.ID]
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt, "updated_at unchanged on failed update")
}

func TestMemoDeleteThenDeleteAgainIsNotFound(t *testing.T) {
	svc := NewMemoService(newMemoStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "title", "content")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrMemoNotFound)
}

func TestMemoLifecycleScenario(t *testing.T) {
	svc := NewMemoService(newMemoStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Follow-up", "Check vitals at 3pm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	updated, err := svc.Update(ctx, 42, created.ID, "Follow-up visit", "Check vitals at 3pm")
	require.NoError(t, err)
	assert.Equal(t, "Follow-up visit", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	assert.ErrorIs(t, svc.Delete(ctx, 7, created.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, 42, created.ID))

	_, err = svc.Get(ctx, 42, created.ID)
	assert.ErrorIs(t, err, ErrMemoNotFound)
}

func TestMemoStoreFailurePropagates(t *testing.T) {
	store := newMemoStore()
	store.err = errors.New("connection lost")
	svc := NewMemoService(store)

	_, err := svc.List(context.Background(), 1)
	assert.EqualError(t, err, "connection lost")
}
