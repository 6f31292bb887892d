package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoStore struct {
	users *mongo.Collection
	todos *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users: db.Collection(UsersCollection),
		todos: db.Collection(TodosCollection),
	}
}

func (s *MongoStore) InsertUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindUserByToken(ctx context.Context, id bson.ObjectID, access, token string) (*models.User, error) {
	return s.findUser(ctx, bson.M{
		"_id": id,
		"tokens": bson.M{"$elemMatch": bson.M{
			"access": access,
			"token":  token,
		}},
	})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) PushToken(ctx context.Context, id bson.ObjectID, token models.Token) error {
	res, err := s.users.UpdateByID(ctx, id, bson.M{"$push": bson.M{"tokens": token}})
	if err != nil {
		return fmt.Errorf("push token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) PullToken(ctx context.Context, id bson.ObjectID, token string) error {
	_, err := s.users.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": token}},
	})
	if err != nil {
		return fmt.Errorf("pull token: %w", err)
	}
	return nil
}

func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *MongoStore) InsertTodo(ctx context.Context, todo *models.Todo) error {
	if todo.ID.IsZero() {
		todo.ID = bson.NewObjectID()
	}
	if _, err := s.todos.InsertOne(ctx, todo); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *MongoStore) FindTodos(ctx context.Context, creator bson.ObjectID) ([]models.Todo, error) {
	cursor, err := s.todos.Find(ctx, bson.M{"creator": creator})
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := make([]models.Todo, 0)
	for cursor.Next(ctx) {
		var t models.Todo
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (s *MongoStore) FindTodo(ctx context.Context, id, creator bson.ObjectID) (*models.Todo, error) {
	return decodeTodo(s.todos.FindOne(ctx, ownedBy(id, creator)))
}

func (s *MongoStore) DeleteTodo(ctx context.Context, id, creator bson.ObjectID) (*models.Todo, error) {
	return decodeTodo(s.todos.FindOneAndDelete(ctx, ownedBy(id, creator)))
}

// UpdateTodo applies the patch in a single findOneAndUpdate, so completed and
// completedAt always change together.
func (s *MongoStore) UpdateTodo(ctx context.Context, id, creator bson.ObjectID, patch models.TodoPatch) (*models.Todo, error) {
	if patch.IsEmpty() {
		return s.FindTodo(ctx, id, creator)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeTodo(s.todos.FindOneAndUpdate(ctx, ownedBy(id, creator), bson.M{"$set": patch.SetDocument()}, opts))
}

func ownedBy(id, creator bson.ObjectID) bson.M {
	return bson.M{"_id": id, "creator": creator}
}

func decodeTodo(res *mongo.SingleResult) (*models.Todo, error) {
	var todo models.Todo
	if err := res.Decode(&todo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("decode todo: %w", err)
	}
	return &todo, nil
}
