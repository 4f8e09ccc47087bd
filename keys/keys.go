// Package keys derives the storage keys used by the draft and wishlist
// stores. Keys have the form namespace:part:part... and are deterministic.
package keys

import (
	"strings"

	"globetrotter/core"
)

const (
	NamespaceDraft    = "draft"
	NamespaceWishlist = "wishlist"

	FallbackUser  = core.AnonymousUserID
	FallbackTrip  = "unknown"
	FallbackScope = "default"

	separator = ":"
)

// Part is one key component together with the value used when it is empty.
type Part struct {
	Value    string
	Fallback string
}

var partEscaper = strings.NewReplacer("%", "%25", separator, "%3A")

// Derive joins namespace and parts with ':'. Each part is trimmed and replaced
// by its fallback when empty. A ':' or '%' inside a part is percent-encoded so
// two different part tuples never produce the same key.
func Derive(namespace string, parts ...Part) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		v := strings.TrimSpace(p.Value)
		if v == "" {
			v = p.Fallback
		}
		b.WriteString(separator)
		b.WriteString(partEscaper.Replace(v))
	}
	return b.String()
}

// Draft returns the key of the draft addressed by id.
func Draft(id core.DraftIdentity) string {
	return Derive(NamespaceDraft,
		Part{Value: id.UserID, Fallback: FallbackUser},
		Part{Value: id.TripID, Fallback: FallbackTrip},
		Part{Value: id.Scope, Fallback: FallbackScope},
	)
}

// Wishlist returns the key of the wishlist map owned by userID.
func Wishlist(userID string) string {
	return Derive(NamespaceWishlist, Part{Value: userID, Fallback: FallbackUser})
}
