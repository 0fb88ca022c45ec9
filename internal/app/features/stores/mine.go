package stores

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"github.com/mapchelin/mapchelin/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeMine handles GET /stores/me.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	st, err := h.Stores.GetByOwner(ctx, cu.ID)
	if err == mongo.ErrNoDocuments {
		httpjson.HandleError(w, h.Log, "stores: mine", apperr.NotFound("you do not own a store"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: mine", err)
		return
	}

	h.writeStoreWithComments(ctx, w, http.StatusOK, "store found", "stores: mine", st)
}

// ServeDeleteMine handles DELETE /stores/me. The store, the comments left
// on it, and the notifications it sent go together in one transaction.
func (h *Handler) ServeDeleteMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	err := txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		st, err := h.Stores.GetByOwner(ctx, cu.ID)
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("you do not own a store")
		}
		if err != nil {
			return err
		}

		if _, err := h.Comments.DeleteByStore(ctx, st.ID); err != nil {
			return err
		}
		if _, err := h.Notifications.DeleteBySender(ctx, st.ID); err != nil {
			return err
		}
		_, err = h.Stores.Delete(ctx, st.ID)
		return err
	})
	if err != nil {
		if apperr.From(err) == nil {
			err = apperr.Internal("store deletion failed, rolled back", err)
		}
		httpjson.HandleError(w, h.Log, "stores: delete mine", err)
		return
	}

	h.Log.Info("store deleted", zap.String("owner_id", cu.ID.Hex()))
	httpjson.Write(w, http.StatusOK, "store deleted", nil)
}
