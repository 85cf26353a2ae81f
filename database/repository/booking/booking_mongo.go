package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petsitter/database"
	"petsitter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll        *mongo.Collection
	locksColl   *mongo.Collection
	reviewsColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB. It fails when the
// indexes the repository relies on cannot be created.
func NewMongoBookingRepo(db *mongo.Database) (BookingRepository, error) {
	repo := &MongoBookingRepo{
		coll:        db.Collection("bookings"),
		locksColl:   db.Collection("sitter_locks"),
		reviewsColl: db.Collection("reviews"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return repo, nil
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sitter_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "payment_status", Value: 1}}},
		{Keys: bson.D{{Key: FieldPetTypeID, Value: 1}}},
		{Keys: bson.D{{Key: FieldServiceTypeID, Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	lockIndex := mongo.IndexModel{Keys: bson.D{{Key: "sitter_id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := r.locksColl.Indexes().CreateOne(ctx, lockIndex); err != nil {
		return fmt.Errorf("failed to create sitter lock index: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", database.Wrap(err))
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateState performs a guarded update and returns the document after the write.
func (r *MongoBookingRepo) UpdateState(ctx context.Context, id string, guard StateGuard, change StateChange) (*models.Booking, error) {
	filter := bson.M{
		"id":             id,
		"status":         guard.Status,
		"payment_status": guard.PaymentStatus,
	}
	if guard.UpdatedAt != nil {
		filter["updated_at"] = *guard.UpdatedAt
	}

	set := bson.M{
		"status":         change.Status,
		"payment_status": change.PaymentStatus,
		"updated_at":     change.UpdatedAt,
	}
	if change.Slip != nil {
		set["slip_image"] = change.Slip.ImageURL
		set["slip_public_id"] = change.Slip.PublicID
		set["slip_uploaded_at"] = change.Slip.UploadedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}

	// Nothing matched: tell a missing booking apart from one that moved on.
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to check booking with id %s: %w", id, err)
	}
	if n == 0 {
		return nil, database.ErrNotFound
	}
	return nil, database.ErrStaleWrite
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
