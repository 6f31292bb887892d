package services

import (
	"context"
	"errors"
	"time"

	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type TodoService struct {
	todos database.TodoStore
	now   func() time.Time
}

func NewTodoService(todos database.TodoStore) *TodoService {
	return &TodoService{todos: todos, now: time.Now}
}

// TodoUpdate holds the client-supplied fields of a PATCH; nil means absent.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}

func normalizeTodoText(text string) (string, error) {
	text = utils.NormalizeText(text)
	if text == "" {
		return "", validationError("text must not be empty")
	}
	return text, nil
}

func (s *TodoService) Create(ctx context.Context, owner bson.ObjectID, text string) (*models.Todo, error) {
	text, err := normalizeTodoText(text)
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Text:      text,
		Completed: false,
		Creator:   owner,
	}
	if err := s.todos.InsertTodo(ctx, todo); err != nil {
		return nil, internalError("insert todo", err)
	}
	return todo, nil
}

func (s *TodoService) ListForOwner(ctx context.Context, owner bson.ObjectID) ([]models.Todo, error) {
	todos, err := s.todos.FindTodos(ctx, owner)
	if err != nil {
		return nil, internalError("find todos", err)
	}
	return todos, nil
}

// GetByIDForOwner reports ErrNotFound for a malformed id, a missing todo and
// a todo owned by someone else alike.
func (s *TodoService) GetByIDForOwner(ctx context.Context, owner bson.ObjectID, id string) (*models.Todo, error) {
	todoID, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	todo, err := s.todos.FindTodo(ctx, todoID, owner)
	return todoResult("find todo", todo, err)
}

// DeleteByIDForOwner returns the todo as it was before removal.
func (s *TodoService) DeleteByIDForOwner(ctx context.Context, owner bson.ObjectID, id string) (*models.Todo, error) {
	todoID, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	todo, err := s.todos.DeleteTodo(ctx, todoID, owner)
	return todoResult("delete todo", todo, err)
}

// Update applies the present fields. Setting completed also sets completedAt
// (now when true, null when false) in the same store operation.
func (s *TodoService) Update(ctx context.Context, owner bson.ObjectID, id string, upd TodoUpdate) (*models.Todo, error) {
	todoID, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var patch models.TodoPatch
	if upd.Text != nil {
		text, err := normalizeTodoText(*upd.Text)
		if err != nil {
			return nil, err
		}
		patch.Text = &text
	}
	if upd.Completed != nil {
		completed := *upd.Completed
		patch.Completed = &completed
		if completed {
			at := s.now().UnixMilli()
			patch.CompletedAt = &at
		}
	}

	todo, err := s.todos.UpdateTodo(ctx, todoID, owner, patch)
	return todoResult("update todo", todo, err)
}

func todoResult(op string, todo *models.Todo, err error) (*models.Todo, error) {
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalError(op, err)
	}
	return todo, nil
}
