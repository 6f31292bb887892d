package database

import (
	"context"
	"slices"
	"sync"

	"github.com/princinho/todoapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps documents in process. Each method holds the lock for its
// whole duration, which gives the same per-document atomicity as the Mongo
// update operators.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[bson.ObjectID]*models.User
	todos     map[bson.ObjectID]*models.Todo
	todoOrder []bson.ObjectID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[bson.ObjectID]*models.User),
		todos: make(map[bson.ObjectID]*models.Todo),
	}
}

func (s *MemoryStore) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if _, ok := s.users[user.ID]; ok {
		return ErrDuplicateKey
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindUserByToken(_ context.Context, id bson.ObjectID, access, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || !u.HasToken(access, token) {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) PushToken(_ context.Context, id bson.ObjectID, token models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (s *MemoryStore) PullToken(_ context.Context, id bson.ObjectID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.Tokens = slices.DeleteFunc(u.Tokens, func(t models.Token) bool {
		return t.Token == token
	})
	return nil
}

func (s *MemoryStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *MemoryStore) InsertTodo(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if todo.ID.IsZero() {
		todo.ID = bson.NewObjectID()
	}
	if _, ok := s.todos[todo.ID]; ok {
		return ErrDuplicateKey
	}
	s.todos[todo.ID] = copyTodo(todo)
	s.todoOrder = append(s.todoOrder, todo.ID)
	return nil
}

func (s *MemoryStore) FindTodos(_ context.Context, creator bson.ObjectID) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]models.Todo, 0)
	for _, id := range s.todoOrder {
		if t := s.todos[id]; t.Creator == creator {
			todos = append(todos, *copyTodo(t))
		}
	}
	return todos, nil
}

func (s *MemoryStore) FindTodo(_ context.Context, id, creator bson.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.owned(id, creator)
	if !ok {
		return nil, ErrNotFound
	}
	return copyTodo(t), nil
}

func (s *MemoryStore) DeleteTodo(_ context.Context, id, creator bson.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.owned(id, creator)
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.todos, id)
	s.todoOrder = slices.DeleteFunc(s.todoOrder, func(v bson.ObjectID) bool { return v == id })
	return t, nil
}

func (s *MemoryStore) UpdateTodo(_ context.Context, id, creator bson.ObjectID, patch models.TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.owned(id, creator)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(t)
	return copyTodo(t), nil
}

func (s *MemoryStore) owned(id, creator bson.ObjectID) (*models.Todo, bool) {
	t, ok := s.todos[id]
	if !ok || t.Creator != creator {
		return nil, false
	}
	return t, true
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Tokens = slices.Clone(u.Tokens)
	if c.Tokens == nil {
		c.Tokens = []models.Token{}
	}
	return &c
}

func copyTodo(t *models.Todo) *models.Todo {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
