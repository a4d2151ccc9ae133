package api

import (
	"log/slog"
	"net/http"

	"github.com/eduforge/eduforge/internal/content"
)

// contentsHandler serves the saved-document routes.
type contentsHandler struct {
	store  *content.Store
	logger *slog.Logger
}

// list returns the caller's most recent saved documents, newest first.
func (h *contentsHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.FetchRecent(r.Context())
	if err != nil {
		writeFault(w, err)
		return
	}
	if records == nil {
		records = []content.Record{}
	}
	writeData(w, http.StatusOK, records)
}

// save persists one document supplied by the caller. The owner and
// timestamps are stamped server-side; client-supplied values are ignored.
func (h *contentsHandler) save(w http.ResponseWriter, r *http.Request) {
	var rec content.Record
	if !decodeBody(w, r, &rec) {
		return
	}

	if err := h.store.Save(r.Context(), rec); err != nil {
		writeFault(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"status": "saved"})
}
