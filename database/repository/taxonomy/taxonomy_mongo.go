package taxonomyRepo

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

// MongoTaxonomyRepo implements TaxonomyRepository using MongoDB.
type MongoTaxonomyRepo struct {
	petTypes     *mongo.Collection
	serviceTypes *mongo.Collection
}

// NewMongoTaxonomyRepo creates a new instance of TaxonomyRepository using MongoDB. It fails when the
// indexes the repository relies on cannot be created.
func NewMongoTaxonomyRepo(db *mongo.Database) (TaxonomyRepository, error) {
	repo := &MongoTaxonomyRepo{
		petTypes:     db.Collection("pet_types"),
		serviceTypes: db.Collection("service_types"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create taxonomy indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoTaxonomyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIndex := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	for _, coll := range []*mongo.Collection{r.petTypes, r.serviceTypes} {
		if _, err := coll.Indexes().CreateOne(ctx, idIndex); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s entry: %w", coll.Name(), database.Wrap(err))
	}
	return nil
}

func getByID(ctx context.Context, coll *mongo.Collection, id string, out interface{}) (bool, error) {
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch %s entry %s: %w", coll.Name(), id, err)
	}
	return true, nil
}

func listAll(ctx context.Context, coll *mongo.Collection, sortField string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s entry %s: %w", coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func remove(ctx context.Context, coll *mongo.Collection, id string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s entry %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoTaxonomyRepo) CreatePetType(ctx context.Context, pt *models.PetType) error {
	return insert(ctx, r.petTypes, pt)
}

func (r *MongoTaxonomyRepo) ListPetTypes(ctx context.Context) ([]models.PetType, error) {
	out := []models.PetType{}
	if err := listAll(ctx, r.petTypes, "type_name", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoTaxonomyRepo) GetPetType(ctx context.Context, id string) (*models.PetType, error) {
	var pt models.PetType
	found, err := getByID(ctx, r.petTypes, id, &pt)
	if err != nil || !found {
		return nil, err
	}
	return &pt, nil
}

func (r *MongoTaxonomyRepo) UpdatePetType(ctx context.Context, pt *models.PetType) error {
	return replace(ctx, r.petTypes, pt.ID, pt)
}

func (r *MongoTaxonomyRepo) DeletePetType(ctx context.Context, id string) error {
	return remove(ctx, r.petTypes, id)
}

func (r *MongoTaxonomyRepo) CreateServiceType(ctx context.Context, st *models.ServiceType) error {
	return insert(ctx, r.serviceTypes, st)
}

func (r *MongoTaxonomyRepo) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	out := []models.ServiceType{}
	if err := listAll(ctx, r.serviceTypes, "short_name", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoTaxonomyRepo) GetServiceType(ctx context.Context, id string) (*models.ServiceType, error) {
	var st models.ServiceType
	found, err := getByID(ctx, r.serviceTypes, id, &st)
	if err != nil || !found {
		return nil, err
	}
	return &st, nil
}

func (r *MongoTaxonomyRepo) UpdateServiceType(ctx context.Context, st *models.ServiceType) error {
	return replace(ctx, r.serviceTypes, st.ID, st)
}

func (r *MongoTaxonomyRepo) DeleteServiceType(ctx context.Context, id string) error {
	return remove(ctx, r.serviceTypes, id)
}
