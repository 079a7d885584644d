package domain

import "time"

// ProductCandidate is a single purchasable product returned by the retailer
// search for one ingredient token.
type ProductCandidate struct {
	ID        string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Thumbnail string  `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Available bool    `json:"available" bson:"available"`
}

// IngredientOptionGroup holds the retailer products offered as substitutes
// for one ingredient line. Groups with zero surviving options are never
// stored; retained groups always have at least one option.
type IngredientOptionGroup struct {
	IngredientName     string             `json:"ingredient_name" bson:"ingredient_name"`
	OriginalIngredient string             `json:"original_ingredient" bson:"original_ingredient"`
	Options            []ProductCandidate `json:"options" bson:"options"`
}

// ResolutionRecord is one completed pass of the pipeline for a
// (recipe, requester) pair. Re-resolving the same pair overwrites the
// previous record; the record is immutable once written.
type ResolutionRecord struct {
	ID                string                  `json:"id" bson:"id"`
	RecipeID          string                  `json:"recipe_id" bson:"recipe_id"`
	RequesterID       string                  `json:"requester_id" bson:"requester_id"`
	CreatedAt         time.Time               `json:"created_at" bson:"created_at"`
	IngredientOptions []IngredientOptionGroup `json:"ingredient_options" bson:"ingredient_options"`
	TotalProducts     int                     `json:"total_products" bson:"total_products"`
}

// SelectedProduct is one line of a caller-submitted cart selection.
type SelectedProduct struct {
	IngredientName string  `json:"ingredient_name" bson:"ingredient_name"`
	ProductID      string  `json:"product_id" bson:"product_id"`
	Name           string  `json:"name" bson:"name"`
	Price          float64 `json:"price" bson:"price"`
	Quantity       int     `json:"quantity" bson:"quantity"`
}

// CartSelection is a caller's chosen subset of the option matrix.
type CartSelection struct {
	RecipeID    string            `json:"recipe_id"`
	RequesterID string            `json:"requester_id"`
	Products    []SelectedProduct `json:"products"`
}

// CartLink is the composed affiliate deep link plus totals.
type CartLink struct {
	ID           string            `json:"id"`
	WalmartURL   string            `json:"walmart_url"`
	TotalPrice   float64           `json:"total_price"`
	ProductCount int               `json:"product_count"`
	Products     []SelectedProduct `json:"products"`
}

// CartRecord is the persisted form of a composed cart.
type CartRecord struct {
	ID           string            `bson:"id"`
	RecipeID     string            `bson:"recipe_id"`
	RequesterID  string            `bson:"requester_id"`
	WalmartURL   string            `bson:"walmart_url"`
	TotalPrice   float64           `bson:"total_price"`
	ProductCount int               `bson:"product_count"`
	Products     []SelectedProduct `bson:"products"`
	CreatedAt    time.Time         `bson:"created_at"`
}
