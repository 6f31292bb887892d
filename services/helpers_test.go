package services

import (
	"context"
	"errors"
	"testing"

	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("abc123")

var errBoom = errors.New("boom")

func newTestServices(t *testing.T, store database.UserStore) (*UserService, *TokenService) {
	t.Helper()
	tokens := NewTokenService(store, testSecret)
	users := NewUserService(store, tokens, UserServiceConfig{
		BcryptCost:        bcrypt.MinCost,
		PasswordMinLength: 6,
	})
	return users, tokens
}

// failingStore wraps a MemoryStore and fails the operations that are set.
type failingStore struct {
	*database.MemoryStore
	insertUserErr  error
	findByEmailErr error
	findByTokenErr error
	pushErr        error
	pullErr        error
	findTodoErr    error
}

func (f *failingStore) InsertUser(ctx context.Context, u *models.User) error {
	if f.insertUserErr != nil {
		return f.insertUserErr
	}
	return f.MemoryStore.InsertUser(ctx, u)
}

func (f *failingStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	return f.MemoryStore.FindUserByEmail(ctx, email)
}

func (f *failingStore) FindUserByToken(ctx context.Context, id bson.ObjectID, access, token string) (*models.User, error) {
	if f.findByTokenErr != nil {
		return nil, f.findByTokenErr
	}
	return f.MemoryStore.FindUserByToken(ctx, id, access, token)
}

func (f *failingStore) PushToken(ctx context.Context, id bson.ObjectID, token models.Token) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	return f.MemoryStore.PushToken(ctx, id, token)
}

func (f *failingStore) PullToken(ctx context.Context, id bson.ObjectID, token string) error {
	if f.pullErr != nil {
		return f.pullErr
	}
	return f.MemoryStore.PullToken(ctx, id, token)
}

func (f *failingStore) FindTodo(ctx context.Context, id, creator bson.ObjectID) (*models.Todo, error) {
	if f.findTodoErr != nil {
		return nil, f.findTodoErr
	}
	return f.MemoryStore.FindTodo(ctx, id, creator)
}
