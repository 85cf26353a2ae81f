package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"petsitter/database"
	"petsitter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB. It fails when the
// indexes the repository relies on cannot be created.
func NewMongoReviewRepo(db *mongo.Database) (ReviewRepository, error) {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create review indexes: %w", err)
	}
	return repo, nil
}

// ensureIndexes creates the unique booking index that enforces one review per booking.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sitter_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review for booking %s: %w", review.BookingID, database.Wrap(err))
	}
	return nil
}

func (r *MongoReviewRepo) ListBySitter(ctx context.Context, sitterID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"sitter_id": sitterID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for sitter %s: %w", sitterID, err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) AverageForSitter(ctx context.Context, sitterID string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "sitter_id", Value: sitterID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sitter_id"},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings for sitter %s: %w", sitterID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}

func (r *MongoReviewRepo) ReviewedBookings(ctx context.Context, bookingIDs []string) (map[string]bool, error) {
	reviewed := make(map[string]bool, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return reviewed, nil
	}

	opts := options.Find().SetProjection(bson.M{"booking_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"booking_id": bson.M{"$in": bookingIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reviews: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			BookingID string `bson:"booking_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviewed[row.BookingID] = true
	}
	return reviewed, cursor.Err()
}

func (r *MongoReviewRepo) DeleteByBooking(ctx context.Context, bookingID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"booking_id": bookingID}); err != nil {
		return fmt.Errorf("failed to delete review for booking %s: %w", bookingID, err)
	}
	return nil
}
