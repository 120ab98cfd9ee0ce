package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nurhusenm/Devtracker/models"
)

type MongoProjectRepository struct {
	collection *mongo.Collection
}

func NewMongoProjectRepository(collection *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{collection: collection}
}

func (r *MongoProjectRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	update := bson.M{"$set": bson.M{
		"name":        project.Name,
		"description": project.Description,
		"status":      project.Status,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": project.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
