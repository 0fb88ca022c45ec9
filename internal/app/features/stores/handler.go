// Package stores serves the store directory: geo search, registration,
// and the owner's own store.
package stores

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/store/comments"
	"github.com/mapchelin/mapchelin/internal/app/store/notifications"
	"github.com/mapchelin/mapchelin/internal/app/store/stores"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies of the store endpoints.
type Handler struct {
	Client        *mongo.Client
	Stores        *storestore.Store
	Comments      *commentstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

// NewHandler constructs a stores Handler.
func NewHandler(client *mongo.Client, st *storestore.Store, cm *commentstore.Store, nt *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Client:        client,
		Stores:        st,
		Comments:      cm,
		Notifications: nt,
		Log:           logger,
	}
}

// writeStoreWithComments renders the {store, comments} body shared by the
// create, view, and owner endpoints.
func (h *Handler) writeStoreWithComments(ctx context.Context, w http.ResponseWriter, status int, msg, operation string, st *models.Store) {
	cms, err := h.Comments.ListByStore(ctx, st.ID)
	if err != nil {
		httpjson.HandleError(w, h.Log, operation, err)
		return
	}
	if cms == nil {
		cms = []models.Comment{}
	}
	httpjson.Write(w, status, msg, map[string]any{
		"store":    st,
		"comments": cms,
	})
}
