package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petsitter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}})

func (r *MongoBookingRepo) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	bookings, err := r.find(ctx, bson.M{"member_id": memberID}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for member %s: %w", memberID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListBySitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"sitter_id": sitterID}
	if status != "" {
		filter["status"] = status
	}
	bookings, err := r.find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for sitter %s: %w", sitterID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListPaidBySitter(ctx context.Context, sitterID string) ([]models.Booking, error) {
	filter := bson.M{
		"sitter_id":      sitterID,
		"payment_status": models.PaymentPaid,
		"status":         bson.M{"$ne": models.BookingCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	bookings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid bookings for sitter %s: %w", sitterID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListSlips(ctx context.Context, status models.PaymentStatus) ([]models.SlipRecord, error) {
	filter := bson.M{}
	if status != "" {
		filter["payment_status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}).
		SetProjection(bson.M{
			"id": 1, "member_id": 1, "sitter_id": 1, "total_price": 1,
			"payment_status": 1, "slip_image": 1, "created_at": 1, "updated_at": 1,
		})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking slips: %w", err)
	}
	defer cursor.Close(ctx)

	slips := []models.SlipRecord{}
	if err := cursor.All(ctx, &slips); err != nil {
		return nil, fmt.Errorf("failed to decode booking slips: %w", err)
	}
	return slips, nil
}

// FindOverlapping applies the half-open overlap predicate start < other.end && end > other.start.
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, sitterID, excludeID string, start, end time.Time) (*models.Booking, error) {
	filter := bson.M{
		"sitter_id":  sitterID,
		"status":     models.BookingConfirmed,
		"id":         bson.M{"$ne": excludeID},
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: 1}})

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check overlapping bookings for sitter %s: %w", sitterID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) HasReference(ctx context.Context, field, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{field: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count bookings by %s: %w", field, err)
	}
	return n > 0, nil
}
