package core

type (
	// DraftIdentity addresses one in-progress draft. Empty fields are
	// normalized when the storage key is derived.
	DraftIdentity struct {
		UserID string `json:"userId,omitempty"`
		TripID string `json:"tripId,omitempty"`
		Scope  string `json:"scope,omitempty"`
	}
)
