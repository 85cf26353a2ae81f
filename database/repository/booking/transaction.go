package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"petsitter/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// WithSitterLock runs fn inside a transaction that first bumps the sitter's lock document.
// Two transactions touching the same lock document conflict, so the second one is aborted
// and retried by the driver after the first commits, and its reads then see the first's writes.
func (r *MongoBookingRepo) WithSitterLock(ctx context.Context, sitterID string, fn func(ctx context.Context) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		lockUpdate := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"updated_at": time.Now()},
		}
		if _, err := r.locksColl.UpdateOne(sc, bson.M{"sitter_id": sitterID}, lockUpdate, options.Update().SetUpsert(true)); err != nil {
			return nil, fmt.Errorf("acquire sitter lock failed: %w", err)
		}
		return nil, fn(sc)
	}, txnOpts)
	if err != nil {
		return fmt.Errorf("sitter lock transaction failed: %w", err)
	}
	return nil
}

// DeleteWithReview removes the booking and its review in one transaction.
func (r *MongoBookingRepo) DeleteWithReview(ctx context.Context, id string) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := r.coll.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return nil, fmt.Errorf("failed to delete booking with id %s: %w", id, err)
		}
		if result.DeletedCount == 0 {
			return nil, database.ErrNotFound
		}
		if _, err := r.reviewsColl.DeleteMany(sc, bson.M{"booking_id": id}); err != nil {
			return nil, fmt.Errorf("failed to delete review for booking %s: %w", id, err)
		}
		return nil, nil
	}, txnOpts)
	if err != nil {
		return fmt.Errorf("delete booking transaction failed: %w", err)
	}
	return nil
}
