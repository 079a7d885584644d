package walmart

import "strings"

// itemID decodes the retailer's itemId whether it arrives as a JSON number
// or a quoted string; both occur in the wild.
type itemID string

func (id *itemID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*id = itemID(s)
	return nil
}

// searchResponse is the affiliate search API response envelope
type searchResponse struct {
	Query      string       `json:"query"`
	TotalCount int          `json:"totalResults"`
	Items      []searchItem `json:"items"`
}

// searchItem is one product in an affiliate search response. ItemID is
// numeric in the retailer's JSON but treated as opaque text everywhere else,
// so it is decoded into a RawMessage-free flexible field here.
type searchItem struct {
	ItemID          itemID  `json:"itemId"`
	Name            string  `json:"name"`
	SalePrice       float64 `json:"salePrice"`
	ThumbnailImage  string  `json:"thumbnailImage"`
	MediumImage     string  `json:"mediumImage"`
	AvailableOnline *bool   `json:"availableOnline"`
}
