package userRepo

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

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB. It fails when the
// indexes the repository relies on cannot be created.
func NewMongoAccountRepo(db *mongo.Database) (AccountRepository, error) {
	repo := &MongoAccountRepo{coll: db.Collection("accounts")}

	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create account indexes: %w", err)
	}
	return repo, nil
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var account models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account document.
func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", database.Wrap(err))
	}
	return nil
}

// GetByID retrieves an account by its unique ID.
func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	account, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account with id %s: %w", id, err)
	}
	return account, nil
}

// GetByEmail retrieves an account by its email address.
func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}
	return account, nil
}

// ListSitters retrieves sitter accounts without credentials.
func (r *MongoAccountRepo) ListSitters(ctx context.Context, status models.VerificationStatus) ([]models.Account, error) {
	filter := bson.M{"role": models.RoleSitter}
	if status != "" {
		filter["verification_status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password_hash": 0, "token_hash": 0, "fcm_token": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sitters: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := []models.Account{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode sitters: %w", err)
	}
	return accounts, nil
}

// SetVerificationStatus updates a sitter's verification status.
func (r *MongoAccountRepo) SetVerificationStatus(ctx context.Context, id string, status models.VerificationStatus) (*models.Account, error) {
	filter := bson.M{"id": id, "role": models.RoleSitter}
	update := bson.M{"$set": bson.M{"verification_status": status, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password_hash": 0, "token_hash": 0, "fcm_token": 0})

	var account models.Account
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update sitter %s: %w", id, err)
	}
	return &account, nil
}

func (r *MongoAccountRepo) setField(ctx context.Context, id, field, value string) error {
	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update account with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// SetFCMToken stores the device push token of an account.
func (r *MongoAccountRepo) SetFCMToken(ctx context.Context, id, token string) error {
	return r.setField(ctx, id, "fcm_token", token)
}

// SetTokenHash records the hash of the account's current session token.
func (r *MongoAccountRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.setField(ctx, id, "token_hash", tokenHash)
}
