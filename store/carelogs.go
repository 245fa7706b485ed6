package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leafline/models"
)

var ErrNotFound = errors.New("store: not found")

// CareLogs reads and enriches care-log entries. Logs are immutable once
// written except for the metadata enrichment the advisory pipeline appends.
type CareLogs struct {
	col *mongo.Collection
}

func NewCareLogs(col *mongo.Collection) *CareLogs {
	return &CareLogs{col: col}
}

func (s *CareLogs) GetLog(ctx context.Context, id primitive.ObjectID) (models.CareLog, error) {
	var l models.CareLog
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return l, ErrNotFound
	}
	return l, err
}

// RecentLogs returns up to limit entries for a plant, newest first,
// excluding the given log id. It implements advisor.CareHistory.
func (s *CareLogs) RecentLogs(ctx context.Context, plantID, exclude primitive.ObjectID, limit int64) ([]models.CareLog, error) {
	filter := bson.M{"plantId": plantID}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	cur, err := s.col.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CareLog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttachMetadata appends an enrichment payload under the given metadata key.
// This is the one shared write the advisory core performs.
func (s *CareLogs) AttachMetadata(ctx context.Context, id primitive.ObjectID, key string, value any) (models.CareLog, error) {
	res := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"metadata." + key: value}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.CareLog
	if err := res.Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, ErrNotFound
		}
		return out, err
	}
	return out, nil
}

// EnsureIndexes creates the index the newest-first history reads rely on.
func (s *CareLogs) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "plantId", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
