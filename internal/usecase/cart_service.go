package usecase

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/dishcart/backend/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartConfig holds the cart composer's configuration
type CartConfig struct {
	CartURL     string  // affiliate cart base URL
	ItemsParam  string  // query parameter carrying the product id CSV
	AffiliateID string  // optional attribution token; empty omits the parameter
	MaxTotal    float64 // price ceiling safety rail; zero disables
}

// DefaultCartURL is the retailer's buy-now cart page
const DefaultCartURL = "https://affil.walmart.com/cart/buynow"

// CartService validates caller-supplied selections and composes affiliate
// deep-link URLs. Composition is pure CPU work; the only suspension point
// is persisting the resulting cart record.
type CartService struct {
	carts  domain.CartRepository
	filter *AuthenticityFilter
	config CartConfig
	logger *zap.Logger
}

// NewCartService creates a cart service
func NewCartService(carts domain.CartRepository, filter *AuthenticityFilter, config CartConfig, logger *zap.Logger) *CartService {
	if config.CartURL == "" {
		config.CartURL = DefaultCartURL
	}
	if config.ItemsParam == "" {
		config.ItemsParam = "items"
	}

	return &CartService{
		carts:  carts,
		filter: filter,
		config: config,
		logger: logger,
	}
}

// Compose validates the selection, builds the deep link, persists the cart
// record, and returns the link with totals.
//
// Every product id must pass the authenticity rules and every quantity must
// be a positive integer, or the whole call fails with
// domain.ErrInvalidSelection carrying per-item reasons.
func (s *CartService) Compose(ctx context.Context, selection domain.CartSelection) (*domain.CartLink, error) {
	if err := s.validate(selection); err != nil {
		return nil, err
	}

	totalPrice, productCount := cartTotals(selection.Products)
	if s.config.MaxTotal > 0 && totalPrice > s.config.MaxTotal {
		return nil, fmt.Errorf("%w: total %.2f exceeds %.2f",
			domain.ErrPriceOverflow, totalPrice, s.config.MaxTotal)
	}

	cart := &domain.CartRecord{
		ID:           uuid.NewString(),
		RecipeID:     selection.RecipeID,
		RequesterID:  selection.RequesterID,
		WalmartURL:   s.buildCartURL(selection.Products),
		TotalPrice:   totalPrice,
		ProductCount: productCount,
		Products:     selection.Products,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Info("cart composed",
		zap.String("cart_id", cart.ID),
		zap.Int("products", productCount),
		zap.Float64("total", totalPrice))

	return &domain.CartLink{
		ID:           cart.ID,
		WalmartURL:   cart.WalmartURL,
		TotalPrice:   totalPrice,
		ProductCount: productCount,
		Products:     selection.Products,
	}, nil
}

// validate applies the authenticity and quantity rules to every selection
// entry, collecting all reasons before failing
func (s *CartService) validate(selection domain.CartSelection) error {
	if len(selection.Products) == 0 {
		return fmt.Errorf("%w: selection is empty", domain.ErrInvalidSelection)
	}

	var reasons []string
	for i, product := range selection.Products {
		if err := s.filter.Check(product.ProductID); err != nil {
			reasons = append(reasons, fmt.Sprintf("item %d: %v", i, err))
		}
		if product.Quantity < 1 {
			reasons = append(reasons, fmt.Sprintf("item %d: quantity %d is not a positive integer", i, product.Quantity))
		}
	}

	if len(reasons) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSelection, strings.Join(reasons, "; "))
	}
	return nil
}

// buildCartURL emits the affiliate deep link. An id selected with quantity n
// appears n times in the CSV; the retailer's cart page reads repetition as
// quantity. Selection order is preserved and quantity copies stay adjacent.
func (s *CartService) buildCartURL(products []domain.SelectedProduct) string {
	var ids []string
	for _, product := range products {
		for i := 0; i < product.Quantity; i++ {
			ids = append(ids, product.ProductID)
		}
	}

	var b strings.Builder
	b.WriteString(s.config.CartURL)
	b.WriteString("?")
	b.WriteString(s.config.ItemsParam)
	b.WriteString("=")
	b.WriteString(strings.Join(ids, ","))
	if s.config.AffiliateID != "" {
		b.WriteString("&affiliate_id=")
		b.WriteString(url.QueryEscape(s.config.AffiliateID))
	}
	return b.String()
}

// cartTotals sums price times quantity over the selection. The total is
// rounded half-up to two decimals once, on the final sum, which keeps the
// operation idempotent.
func cartTotals(products []domain.SelectedProduct) (float64, int) {
	total := 0.0
	count := 0
	for _, product := range products {
		total += product.Price * float64(product.Quantity)
		count += product.Quantity
	}
	return RoundPrice(total), count
}

// RoundPrice rounds a non-negative price to two decimal places, half-up
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
