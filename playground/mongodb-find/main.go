// Command mongodb-find prints todos or a user count straight from the
// collections, bypassing the API.
package main

import (
	"context"
	"encoding/json"
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
)

func main() {
	_ = godotenv.Load()

	uri := flag.String("uri", envOr("MONGODB_URI", "mongodb://localhost:27017"), "mongo connection string")
	dbName := flag.String("db", envOr("DATABASE_NAME", "TodoApp"), "database name")
	id := flag.String("id", "", "todo id to look up")
	email := flag.String("email", "", "count users with this email")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, *uri)
	if err != nil {
		log.Fatal("Unable to connect to MongoDB server: ", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(*dbName)

	if *email != "" {
		count, err := db.Collection(database.UsersCollection).CountDocuments(ctx, bson.M{"email": *email})
		if err != nil {
			log.Fatal("Unable to count users: ", err)
		}
		fmt.Printf("Users count: %d\n", count)
		return
	}

	filter := bson.M{}
	if *id != "" {
		oid, ok := utils.ParseObjectID(*id)
		if !ok {
			log.Fatalf("ID not valid: %q", *id)
		}
		filter["_id"] = oid
	}

	cursor, err := db.Collection(database.TodosCollection).Find(ctx, filter)
	if err != nil {
		log.Fatal("Unable to fetch todos: ", err)
	}
	var todos []models.Todo
	if err := cursor.All(ctx, &todos); err != nil {
		log.Fatal("Unable to decode todos: ", err)
	}

	fmt.Println("Todos")
	out, _ := json.MarshalIndent(todos, "", "  ")
	fmt.Println(string(out))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
