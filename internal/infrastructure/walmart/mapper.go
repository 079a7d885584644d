package walmart

import (
	"math"

	"github.com/dishcart/backend/internal/domain"
)

// mapSearchItems converts raw affiliate search items into product
// candidates, applying the documented field defaults: name "unknown", price
// 0.00, availability true. Items past the limit are dropped.
func mapSearchItems(items []searchItem, limit int) []domain.ProductCandidate {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	candidates := make([]domain.ProductCandidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, mapSearchItem(item))
	}
	return candidates
}

// mapSearchItem converts one raw item to a candidate
func mapSearchItem(item searchItem) domain.ProductCandidate {
	name := item.Name
	if name == "" {
		name = "unknown"
	}

	thumbnail := item.ThumbnailImage
	if thumbnail == "" {
		thumbnail = item.MediumImage
	}

	available := true
	if item.AvailableOnline != nil {
		available = *item.AvailableOnline
	}

	return domain.ProductCandidate{
		ID:        string(item.ItemID),
		Name:      name,
		Price:     roundPrice(item.SalePrice),
		Thumbnail: thumbnail,
		Available: available,
	}
}

// roundPrice normalizes a price to two decimal places, half-up
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
