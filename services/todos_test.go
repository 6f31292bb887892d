package services

import (
	"context"
	"testing"
	"time"

	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newTestTodoService(store database.TodoStore, now time.Time) *TodoService {
	s := NewTodoService(store)
	s.now = func() time.Time { return now }
	return s
}

func assertCompletionPaired(t *testing.T, todo *models.Todo) {
	t.Helper()
	assert.Equal(t, todo.Completed, todo.CompletedAt != nil,
		"completed=%v but completedAt=%v", todo.Completed, todo.CompletedAt)
}

func TestTodoCreate(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	s := NewTodoService(store)
	owner := bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "  Test todo text  ")
	require.NoError(t, err)
	assert.Equal(t, "Test todo text", todo.Text)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Equal(t, owner, todo.Creator)
	assertCompletionPaired(t, todo)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Create(ctx, owner, text)
		assert.ErrorIs(t, err, ErrValidation)
	}

	list, err := s.ListForOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTodoNotFoundUnification(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	s := NewTodoService(store)
	owner, stranger := bson.NewObjectID(), bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "private")
	require.NoError(t, err)

	text := "changed"
	ids := map[string]string{
		"foreign":   todo.ID.Hex(),
		"malformed": "123",
		"missing":   bson.NewObjectID().Hex(),
	}
	for name, id := range ids {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetByIDForOwner(ctx, stranger, id)
			assert.Equal(t, ErrNotFound, err)
			_, err = s.DeleteByIDForOwner(ctx, stranger, id)
			assert.Equal(t, ErrNotFound, err)
			_, err = s.Update(ctx, stranger, id, TodoUpdate{Text: &text})
			assert.Equal(t, ErrNotFound, err)
		})
	}

	got, err := s.GetByIDForOwner(ctx, owner, todo.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "private", got.Text)
}

func TestTodoUpdate_CompletionPairing(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTodoService(store, now)
	owner := bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "First test todo")
	require.NoError(t, err)

	done := true
	text := "This should be the new text"
	got, err := s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{Text: &text, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, text, got.Text)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, now.UnixMilli(), *got.CompletedAt)
	assertCompletionPaired(t, got)

	undone := false
	got, err = s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{Completed: &undone})
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, text, got.Text)
	assertCompletionPaired(t, got)
}

func TestTodoUpdate_TextOnlyKeepsCompletion(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	s := NewTodoService(store)
	owner := bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "a")
	require.NoError(t, err)
	done := true
	_, err = s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{Completed: &done})
	require.NoError(t, err)

	text := "b"
	got, err := s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Text)
	assert.True(t, got.Completed)
	assertCompletionPaired(t, got)

	got, err = s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Text)
}

func TestTodoUpdate_EmptyText(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	s := NewTodoService(store)
	owner := bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "keep me")
	require.NoError(t, err)

	blank := "   "
	_, err = s.Update(ctx, owner, todo.ID.Hex(), TodoUpdate{Text: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.GetByIDForOwner(ctx, owner, todo.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Text)
}

func TestTodoDelete(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	s := NewTodoService(store)
	owner := bson.NewObjectID()

	todo, err := s.Create(ctx, owner, "Second test todo")
	require.NoError(t, err)

	deleted, err := s.DeleteByIDForOwner(ctx, owner, todo.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)
	assert.Equal(t, "Second test todo", deleted.Text)

	_, err = s.GetByIDForOwner(ctx, owner, todo.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodo_StoreFailureIsInternal(t *testing.T) {
	store := &failingStore{MemoryStore: database.NewMemoryStore(), findTodoErr: errBoom}
	s := NewTodoService(store)

	_, err := s.GetByIDForOwner(context.Background(), bson.NewObjectID(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrNotFound)
}
