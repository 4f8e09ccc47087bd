package wishlists

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"globetrotter/core"
	"globetrotter/handlers/api"
	"globetrotter/middleware"
	"globetrotter/wishlist"
)

const maxBodyBytes = 1 << 20

type statusResponse struct {
	IsWishlisted bool `json:"isWishlisted"`
}

func HandleList(store *wishlist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := store.List(r.Context(), middleware.UserID(r.Context()))
		if entries == nil {
			entries = []*core.WishlistEntry{}
		}
		render.JSON(w, r, entries)
	}
}

func HandleGetMap(store *wishlist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, store.LoadMap(r.Context(), middleware.UserID(r.Context())))
	}
}

// HandleSaveMap replaces the caller's whole wishlist with the request body.
func HandleSaveMap(store *wishlist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var m core.WishlistMap
		if err := decodeBody(w, r, &m); err != nil || m == nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Wishlist must be a JSON object"})
			return
		}

		if err := store.SaveMap(r.Context(), userID, m); err != nil {
			logrus.WithFields(logrus.Fields{
				"error":  err,
				"userID": userID,
			}).Error("Failed to save wishlist")
			api.WriteStoreError(w, r, err, "Failed to save wishlist")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleStatus(store *wishlist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemId")
		wishlisted := store.IsWishlisted(r.Context(), middleware.UserID(r.Context()), itemID)
		render.JSON(w, r, statusResponse{IsWishlisted: wishlisted})
	}
}

// HandleToggle adds the posted item to the wishlist or removes it when it is
// already there.
func HandleToggle(store *wishlist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var item core.WishlistItem
		if err := decodeBody(w, r, &item); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Item must be a JSON object with string id, type, title and name"})
			return
		}

		result, err := store.Toggle(r.Context(), userID, item)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error":  err,
				"userID": userID,
				"itemID": item.ID,
			}).Error("Failed to toggle wishlist item")
			api.WriteStoreError(w, r, err, "Failed to update wishlist")
			return
		}

		render.JSON(w, r, result)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
