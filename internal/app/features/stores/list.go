package stores

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mapchelin/mapchelin/internal/app/store/stores"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/httpjson"
	"github.com/mapchelin/mapchelin/internal/app/system/timeouts"
	"github.com/mapchelin/mapchelin/internal/domain/models"
)

// ServeList handles GET /stores?lat&lon[&radius&category&name]. Results
// come back nearest first from the geo index.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()

	lat, err := parseCoord(q.Get("lat"), -90, 90)
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: list", apperr.BadRequest("lat must be a number between -90 and 90"))
		return
	}
	lon, err := parseCoord(q.Get("lon"), -180, 180)
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: list", apperr.BadRequest("lon must be a number between -180 and 180"))
		return
	}

	var radius float64
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			httpjson.HandleError(w, h.Log, "stores: list", apperr.BadRequest("radius must be a positive number of meters"))
			return
		}
	}

	out, err := h.Stores.ListByGeo(ctx, storestore.GeoFilter{
		Lat:       lat,
		Lon:       lon,
		MaxMeters: radius,
		Category:  q.Get("category"),
		Name:      q.Get("name"),
	})
	if err != nil {
		httpjson.HandleError(w, h.Log, "stores: list", err)
		return
	}
	if out == nil {
		out = []models.Store{}
	}

	httpjson.Write(w, http.StatusOK, "stores listed", map[string]any{
		"stores": out,
	})
}

func parseCoord(raw string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, strconv.ErrRange
	}
	return v, nil
}
