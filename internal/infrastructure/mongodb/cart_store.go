package mongodb

import (
	"context"
	"fmt"

	"github.com/dishcart/backend/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartStore persists composed carts
type CartStore struct {
	collection *mongo.Collection
}

// NewCartStore creates a cart store on the given database
func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{collection: db.Collection(cartsCollection)}
}

// Save inserts the cart record
func (s *CartStore) Save(ctx context.Context, cart *domain.CartRecord) error {
	if _, err := s.collection.InsertOne(ctx, cart); err != nil {
		return fmt.Errorf("%w: saving cart: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
