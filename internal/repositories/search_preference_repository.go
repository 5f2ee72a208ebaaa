package repositories

import (
	"context"
	"time"

	"github.com/dwelli/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchPreferenceRepository stores a user's saved searches
type SearchPreferenceRepository interface {
	CreateSearchPreference(ctx context.Context, pref *models.SearchPreference) error
	GetSearchPreferencesByUser(ctx context.Context, userID uint) ([]models.SearchPreference, error)
	DeleteSearchPreference(ctx context.Context, userID uint, id string) error
}

// MongoSearchPreferenceRepository implements SearchPreferenceRepository for MongoDB
type MongoSearchPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoSearchPreferenceRepository creates a new MongoSearchPreferenceRepository
func NewMongoSearchPreferenceRepository(db *mongo.Database) *MongoSearchPreferenceRepository {
	return &MongoSearchPreferenceRepository{collection: db.Collection("search_preferences")}
}

// EnsureIndexes creates the per-user lookup index
func (r *MongoSearchPreferenceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *MongoSearchPreferenceRepository) CreateSearchPreference(ctx context.Context, pref *models.SearchPreference) error {
	pref.ID = primitive.NewObjectID()
	pref.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, pref)
	return translate(err)
}

func (r *MongoSearchPreferenceRepository) GetSearchPreferencesByUser(ctx context.Context, userID uint) ([]models.SearchPreference, error) {
	prefs := []models.SearchPreference{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// DeleteSearchPreference removes a search owned by userID. A malformed id is not found.
func (r *MongoSearchPreferenceRepository) DeleteSearchPreference(ctx context.Context, userID uint, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
