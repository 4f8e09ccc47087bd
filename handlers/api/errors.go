package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"globetrotter/core"
)

// WriteStoreError renders a failed storage write. A full medium maps to 507,
// anything else to 500 with msg.
func WriteStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrQuotaExceeded) {
		status = http.StatusInsufficientStorage
		msg = "Storage quota exceeded"
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}
