package sitterRepo

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

// MongoSitterRepo implements SitterRepository using MongoDB.
type MongoSitterRepo struct {
	services *mongo.Collection
	methods  *mongo.Collection
}

// NewMongoSitterRepo creates a new instance of SitterRepository using MongoDB. It fails when the
// indexes the repository relies on cannot be created.
func NewMongoSitterRepo(db *mongo.Database) (SitterRepository, error) {
	repo := &MongoSitterRepo{
		services: db.Collection("sitter_services"),
		methods:  db.Collection("payment_methods"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create sitter indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoSitterRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sitter_id", Value: 1}}},
		{Keys: bson.D{{Key: "pet_type_id", Value: 1}}},
		{Keys: bson.D{{Key: "service_type_id", Value: 1}}},
	}
	if _, err := r.services.Indexes().CreateMany(ctx, serviceIndexes); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}

	methodIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sitter_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := r.methods.Indexes().CreateMany(ctx, methodIndexes); err != nil {
		return fmt.Errorf("failed to create payment method indexes: %w", err)
	}
	return nil
}

func (r *MongoSitterRepo) CreateService(ctx context.Context, svc *models.SitterService) error {
	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create sitter service: %w", database.Wrap(err))
	}
	return nil
}

func (r *MongoSitterRepo) GetService(ctx context.Context, id string) (*models.SitterService, error) {
	var svc models.SitterService
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sitter service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoSitterRepo) ListServices(ctx context.Context, sitterID string) ([]models.SitterService, error) {
	opts := options.Find().SetSort(bson.D{{Key: "job_name", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{"sitter_id": sitterID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services for sitter %s: %w", sitterID, err)
	}
	defer cursor.Close(ctx)

	services := []models.SitterService{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode sitter services: %w", err)
	}
	return services, nil
}

func (r *MongoSitterRepo) DeleteService(ctx context.Context, id, sitterID string) error {
	result, err := r.services.DeleteOne(ctx, bson.M{"id": id, "sitter_id": sitterID})
	if err != nil {
		return fmt.Errorf("failed to delete sitter service %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoSitterRepo) HasServiceReference(ctx context.Context, field, id string) (bool, error) {
	n, err := r.services.CountDocuments(ctx, bson.M{field: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count sitter services by %s: %w", field, err)
	}
	return n > 0, nil
}

func (r *MongoSitterRepo) CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error {
	if _, err := r.methods.InsertOne(ctx, pm); err != nil {
		return fmt.Errorf("failed to create payment method: %w", database.Wrap(err))
	}
	return nil
}

func (r *MongoSitterRepo) ListPaymentMethods(ctx context.Context, sitterID string) ([]models.PaymentMethod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.methods.Find(ctx, bson.M{"sitter_id": sitterID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods for sitter %s: %w", sitterID, err)
	}
	defer cursor.Close(ctx)

	methods := []models.PaymentMethod{}
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, fmt.Errorf("failed to decode payment methods: %w", err)
	}
	return methods, nil
}

func (r *MongoSitterRepo) DeletePaymentMethod(ctx context.Context, id, sitterID string) error {
	result, err := r.methods.DeleteOne(ctx, bson.M{"id": id, "sitter_id": sitterID})
	if err != nil {
		return fmt.Errorf("failed to delete payment method %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
