package stores

import (
	"context"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/store/stores"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
)

type newStoreRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Description string  `json:"description"`
}

func (req *newStoreRequest) validate() error {
	if normalize.Text(req.Name) == "" {
		return apperr.BadRequest("store name is required")
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		return apperr.BadRequest("lat/lon must be valid coordinates")
	}
	return nil
}

// ServeNew handles POST /stores. Each account may own at most one store;
// the unique owner index reports a second attempt as a conflict.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cu, _ := auth.CurrentUser(r)

	var req newStoreRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.HandleError(w, h.Log, "stores: new", err)
		return
	}
	if err := req.validate(); err != nil {
		httpjson.HandleError(w, h.Log, "stores: new", err)
		return
	}

	st, err := h.Stores.Create(ctx, cu.ID, storestore.NewStore{
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Description: req.Description,
	})
	if err == storestore.ErrOwnerHasStore {
		httpjson.HandleError(w, h.Log, "stores: new", apperr.Conflict("this user already owns a store"))
		return
	}
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: new", err)
		return
	}

	h.writeStoreWithComments(ctx, w, http.StatusCreated, "store created", "stores: new", &st)
}
