// Command mongodb-update marks a todo completed or not, keeping completedAt
// paired with the flag, and prints the updated document.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	_ = godotenv.Load()

	uri := flag.String("uri", envOr("MONGODB_URI", "mongodb://localhost:27017"), "mongo connection string")
	dbName := flag.String("db", envOr("DATABASE_NAME", "TodoApp"), "database name")
	id := flag.String("id", "", "todo id (required)")
	completed := flag.Bool("completed", true, "completion state to set")
	flag.Parse()

	oid, ok := utils.ParseObjectID(*id)
	if !ok {
		log.Fatalf("ID not valid: %q", *id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, *uri)
	if err != nil {
		log.Fatal("Unable to connect to MongoDB server: ", err)
	}
	defer client.Disconnect(context.Background())

	patch := models.TodoPatch{Completed: completed}
	if *completed {
		at := time.Now().UnixMilli()
		patch.CompletedAt = &at
	}

	var todo models.Todo
	err = client.Database(*dbName).Collection(database.TodosCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch.SetDocument()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Fatal("Id not found")
	}
	if err != nil {
		log.Fatal("Unable to update todo: ", err)
	}

	out, _ := json.MarshalIndent(todo, "", "  ")
	fmt.Println(string(out))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
