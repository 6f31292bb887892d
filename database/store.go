// Package database is the document store adapter. Services depend on the
// UserStore and TodoStore interfaces; MongoStore is the production
// implementation and MemoryStore backs tests and the memory driver.
package database

import (
	"context"
	"errors"

	"github.com/princinho/todoapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type UserStore interface {
	// InsertUser assigns an ID when the user has none. A second user with the
	// same email fails with ErrDuplicateKey.
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByToken matches only if the token is in the user's list.
	FindUserByToken(ctx context.Context, id bson.ObjectID, access, token string) (*models.User, error)
	PushToken(ctx context.Context, id bson.ObjectID, token models.Token) error
	// PullToken removes every entry equal to token. Removing an absent token
	// is not an error.
	PullToken(ctx context.Context, id bson.ObjectID, token string) error
	CountUsers(ctx context.Context) (int64, error)
}

// TodoStore scopes every lookup by creator, so a foreign todo is reported
// as ErrNotFound.
type TodoStore interface {
	InsertTodo(ctx context.Context, todo *models.Todo) error
	FindTodos(ctx context.Context, creator bson.ObjectID) ([]models.Todo, error)
	FindTodo(ctx context.Context, id, creator bson.ObjectID) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id, creator bson.ObjectID) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id, creator bson.ObjectID, patch models.TodoPatch) (*models.Todo, error)
}

type Store interface {
	UserStore
	TodoStore
}
