package wishlist

import (
	"time"

	"globetrotter/core"
)

const defaultTitle = "Trip"

// InferType decides whether item is a trip or an activity. An explicit, known
// type wins; otherwise an item with a name but no title is an activity.
func InferType(item core.WishlistItem) core.ItemType {
	if item.Type.Valid() {
		return item.Type
	}
	if item.Name != "" && item.Title == "" {
		return core.ItemTypeActivity
	}
	return core.ItemTypeTrip
}

// NewEntry builds the snapshot stored for item, saved at now.
func NewEntry(item core.WishlistItem, now time.Time) *core.WishlistEntry {
	title := firstNonEmpty(item.Title, item.Name, defaultTitle)

	budget := item.Budget
	if isFalsy(budget) {
		budget = item.EstimatedCost
	}
	if isFalsy(budget) {
		budget = nil
	}

	return &core.WishlistEntry{
		ID:          item.ID,
		Type:        InferType(item),
		Title:       title,
		Description: optional(item.Description),
		Image:       optional(item.Image),
		ImageAlt:    optional(item.ImageAlt),
		Cities:      optional(item.Cities),
		Duration:    optional(item.Duration),
		Budget:      budget,
		TravelStyle: optional(item.TravelStyle),
		Category:    optional(item.Category),
		PriceRange:  optional(item.PriceRange),
		SavedAt:     now.UTC(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// optional maps nil and "" to nil and copies slices so the entry does not
// alias the item.
func optional(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" {
			return nil
		}
	case []string:
		if len(x) == 0 {
			return nil
		}
		return append([]string(nil), x...)
	case []any:
		return append([]any(nil), x...)
	}
	return v
}

// isFalsy reports whether v is nil, false, zero or the empty string.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	}
	return false
}
