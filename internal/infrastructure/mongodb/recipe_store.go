package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishcart/backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// recipeDocument is the slice of the recipe document this pipeline reads.
// Recipes are written by the recipe-generation service; only the shopping
// list matters here.
type recipeDocument struct {
	ID           string   `bson:"id"`
	ShoppingList []string `bson:"shopping_list"`
}

// RecipeStore reads recipe shopping lists from the recipes collection
type RecipeStore struct {
	collection *mongo.Collection
}

// NewRecipeStore creates a recipe store on the given database
func NewRecipeStore(db *mongo.Database) *RecipeStore {
	return &RecipeStore{collection: db.Collection(recipesCollection)}
}

// GetShoppingList returns the recipe's free-text ingredient lines.
// A missing recipe maps to domain.ErrRecipeNotFound; any other driver error
// maps to domain.ErrStorageUnavailable.
func (s *RecipeStore) GetShoppingList(ctx context.Context, recipeID string) ([]string, error) {
	var doc recipeDocument
	err := s.collection.FindOne(ctx, bson.M{"id": recipeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("%w: loading recipe: %v", domain.ErrStorageUnavailable, err)
	}

	return doc.ShoppingList, nil
}
