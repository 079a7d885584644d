package domain

import "context"

// RecipeRepository reads recipe shopping lists from the document store.
// Recipes are written by the recipe-generation service; this pipeline only
// reads them.
type RecipeRepository interface {
	GetShoppingList(ctx context.Context, recipeID string) ([]string, error)
}

// ResolutionRepository persists resolution records. Save overwrites any
// prior record for the same (recipe_id, requester_id) pair.
type ResolutionRepository interface {
	Save(ctx context.Context, record *ResolutionRecord) error
	GetByRecipeAndRequester(ctx context.Context, recipeID, requesterID string) (*ResolutionRecord, error)
}

// CartRepository persists composed carts.
type CartRepository interface {
	Save(ctx context.Context, cart *CartRecord) error
}

// RetailerClient issues one authenticated keyword search against the
// affiliate product-search endpoint.
type RetailerClient interface {
	Search(ctx context.Context, term string, limit int) ([]ProductCandidate, error)
}
