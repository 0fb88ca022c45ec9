package stores

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeView handles GET /stores/{id}. A malformed id reads the same as a
// missing store.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: view", apperr.NotFound("store not found"))
		return
	}

	st, err := h.Stores.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "stores: view", apperr.NotFound("store not found"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: view", err)
		return
	}

	h.writeStoreWithComments(ctx, w, http.StatusOK, "store found", "stores: view", st)
}
