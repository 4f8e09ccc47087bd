package drafts

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"globetrotter/autosave"
	"globetrotter/core"
	"globetrotter/handlers/api"
	"globetrotter/middleware"
)

// maxDraftBytes bounds a single draft body.
const maxDraftBytes = 1 << 20

func draftIdentity(r *http.Request) core.DraftIdentity {
	return core.DraftIdentity{
		UserID: middleware.UserID(r.Context()),
		TripID: chi.URLParam(r, "tripId"),
		Scope:  chi.URLParam(r, "scope"),
	}
}

// HandleGet returns the stored draft, or null when none exists.
func HandleGet(store *autosave.Store[any]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := draftIdentity(r)
		render.JSON(w, r, store.Load(r.Context(), id, nil))
	}
}

// HandleSave replaces the draft with the JSON request body.
func HandleSave(store *autosave.Store[any]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := draftIdentity(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDraftBytes))
		if err != nil {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, map[string]string{"error": "Draft is too large"})
			return
		}
		defer r.Body.Close()

		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Draft must be valid JSON"})
			return
		}

		if err := store.Save(r.Context(), id, value); err != nil {
			logrus.WithFields(logrus.Fields{
				"error":  err,
				"userID": id.UserID,
				"tripID": id.TripID,
				"scope":  id.Scope,
			}).Error("Failed to save draft")
			api.WriteStoreError(w, r, err, "Failed to save draft")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleClear removes the draft.
func HandleClear(store *autosave.Store[any]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := draftIdentity(r)

		if err := store.Clear(r.Context(), id); err != nil {
			logrus.WithFields(logrus.Fields{
				"error":  err,
				"userID": id.UserID,
				"tripID": id.TripID,
				"scope":  id.Scope,
			}).Error("Failed to clear draft")
			api.WriteStoreError(w, r, err, "Failed to clear draft")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
