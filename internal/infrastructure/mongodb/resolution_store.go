package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishcart/backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResolutionStore persists resolution records, one per (recipe, requester)
// pair. There is no history: a re-resolution replaces the prior record.
type ResolutionStore struct {
	collection *mongo.Collection
}

// NewResolutionStore creates a resolution store on the given database
func NewResolutionStore(db *mongo.Database) *ResolutionStore {
	return &ResolutionStore{collection: db.Collection(resolutionsCollection)}
}

// Save upserts the record keyed by (recipe_id, requester_id)
func (s *ResolutionStore) Save(ctx context.Context, record *domain.ResolutionRecord) error {
	filter := bson.M{
		"recipe_id":    record.RecipeID,
		"requester_id": record.RequesterID,
	}

	_, err := s.collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: saving resolution: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// GetByRecipeAndRequester loads the current record for the pair, or
// domain.ErrRecipeNotFound if none exists
func (s *ResolutionStore) GetByRecipeAndRequester(ctx context.Context, recipeID, requesterID string) (*domain.ResolutionRecord, error) {
	filter := bson.M{
		"recipe_id":    recipeID,
		"requester_id": requesterID,
	}

	var record domain.ResolutionRecord
	err := s.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("%w: loading resolution: %v", domain.ErrStorageUnavailable, err)
	}

	return &record, nil
}
