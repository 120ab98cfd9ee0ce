package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nurhusenm/Devtracker/config"
	"github.com/nurhusenm/Devtracker/handlers"
	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/repositories"
	"github.com/nurhusenm/Devtracker/services"
	"github.com/nurhusenm/Devtracker/utils"
)

func createUserEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting DevTracker API...")

	cfg := config.Load()
	utils.InitSecret(cfg.JWTSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Connected to MongoDB at %s", cfg.MongoURI)

	db := client.Database(cfg.MongoDBName)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")

	if err := createUserEmailIndex(usersCollection); err != nil {
		logging.Logger.Fatal(err)
	}

	userRepo := repositories.NewMongoUserRepository(usersCollection)
	projectRepo := repositories.NewMongoProjectRepository(projectsCollection)
	taskRepo := repositories.NewMongoTaskRepository(tasksCollection)

	authHandler := handlers.NewAuthHandler(services.NewUserService(userRepo))
	projectHandler := handlers.NewProjectHandler(services.NewProjectService(projectRepo))
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo, projectRepo))

	router := handlers.NewRouter(authHandler, projectHandler, taskHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      enableCORS(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logging.Logger.Infof("Server is running on port %s", cfg.Port)
	logging.Logger.Fatal(srv.ListenAndServe())
}

// CORS middleware for the browser client.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
