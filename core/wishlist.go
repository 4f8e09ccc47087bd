package core

import "time"

type ItemType string

const (
	ItemTypeTrip     ItemType = "trip"
	ItemTypeActivity ItemType = "activity"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	return t == ItemTypeTrip || t == ItemTypeActivity
}

type (
	// WishlistItem is what the UI hands over when an item is saved. It covers
	// both upstream shapes: trips carry a title, activities usually only a name.
	// Fields that are only copied into the snapshot accept any JSON value.
	WishlistItem struct {
		ID            string   `json:"id"`
		Type          ItemType `json:"type,omitempty"`
		Title         string   `json:"title,omitempty"`
		Name          string   `json:"name,omitempty"`
		Description   any      `json:"description,omitempty"`
		Image         any      `json:"image,omitempty"`
		ImageAlt      any      `json:"imageAlt,omitempty"`
		Cities        any      `json:"cities,omitempty"`
		Duration      any      `json:"duration,omitempty"`
		Budget        any      `json:"budget,omitempty"`
		EstimatedCost any      `json:"estimatedCost,omitempty"`
		TravelStyle   any      `json:"travelStyle,omitempty"`
		Category      any      `json:"category,omitempty"`
		PriceRange    any      `json:"priceRange,omitempty"`
	}

	// WishlistEntry is the denormalized snapshot persisted for a saved item.
	// SavedAt is set once, when the entry is created.
	WishlistEntry struct {
		ID          string    `json:"id"`
		Type        ItemType  `json:"type"`
		Title       string    `json:"title"`
		Description any       `json:"description"`
		Image       any       `json:"image"`
		ImageAlt    any       `json:"imageAlt"`
		Cities      any       `json:"cities"`
		Duration    any       `json:"duration"`
		Budget      any       `json:"budget"`
		TravelStyle any       `json:"travelStyle"`
		Category    any       `json:"category"`
		PriceRange  any       `json:"priceRange"`
		SavedAt     time.Time `json:"savedAt"`
	}

	// WishlistMap maps item id to its entry. One map exists per user.
	WishlistMap map[string]*WishlistEntry
)
