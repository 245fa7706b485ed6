// Package store implements the persistence collaborators the core consumes:
// a plant-record reader and a care-history reader/writer backed by Mongo.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leafline/models"
)

// Plants reads plant records.
type Plants struct {
	col *mongo.Collection
}

func NewPlants(col *mongo.Collection) *Plants {
	return &Plants{col: col}
}

func (s *Plants) GetPlant(ctx context.Context, id primitive.ObjectID) (models.Plant, error) {
	var p models.Plant
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// GetPlants returns every plant, newest first.
func (s *Plants) GetPlants(ctx context.Context) ([]models.Plant, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Plant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the indexes plant lookups rely on.
func (s *Plants) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
