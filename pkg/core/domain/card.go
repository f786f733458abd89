package domain

import "strings"

const (
	// PlaceholderImage is shown for cards without an image of their own.
	PlaceholderImage = "https://via.placeholder.com/400x300?text=Product+Image"

	// DefaultStoreID is the affiliate tag used until one is configured.
	DefaultStoreID = "lavish057-21"
)

// Card represents a curated deal shown to visitors
type Card struct {
	ID    int64  `json:"id"`
	ASIN  string `json:"asin"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Image string `json:"image"`
}

// StoreConfig holds the affiliate tag appended to generated links
type StoreConfig struct {
	StoreID string `json:"store_id"`
}

// DefaultTitle is the title a card gets when it is created.
func DefaultTitle(asin string) string {
	return strings.TrimSpace("Product " + asin)
}

// ImageOrPlaceholder returns image, or PlaceholderImage when image is empty.
func ImageOrPlaceholder(image string) string {
	if image == "" {
		return PlaceholderImage
	}
	return image
}

// EditState holds the editable fields of a card while it is being edited
type EditState struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}
