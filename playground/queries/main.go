// Command queries looks a user up by id through the store and prints the
// public fields along with the number of active sessions.
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
	"github.com/princinho/todoapi/utils"
)

func main() {
	_ = godotenv.Load()

	uri := flag.String("uri", envOr("MONGODB_URI", "mongodb://localhost:27017"), "mongo connection string")
	dbName := flag.String("db", envOr("DATABASE_NAME", "TodoApp"), "database name")
	id := flag.String("id", "", "user id (required)")
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

	store := database.NewMongoStore(client.Database(*dbName))
	user, err := store.FindUserByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		log.Fatal("Id not found")
	}
	if err != nil {
		log.Fatal(err)
	}

	todos, err := store.FindTodos(ctx, user.ID)
	if err != nil {
		log.Fatal(err)
	}

	out, _ := json.MarshalIndent(user.Public(), "", "  ")
	fmt.Println(string(out))
	fmt.Printf("Active sessions: %d, todos: %d\n", len(user.Tokens), len(todos))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
