// Package httpjson renders the API's JSON envelope. Success responses are
// {"msg": ..., ...payload}; errors flow through the shared formatter so
// every handler maps domain errors to transport statuses the same way.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Write renders a success envelope: msg plus the payload's fields.
// Payload may be nil for message-only responses.
func Write(w http.ResponseWriter, status int, msg string, payload map[string]any) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["msg"] = msg

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError renders an error envelope with just a message.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"msg": msg})
}

// HandleError maps err to a transport response. Tagged domain errors keep
// their message and status; anything else becomes a logged 500 with a
// generic body.
func HandleError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	if ae := apperr.From(err); ae != nil {
		if ae.Kind == apperr.KindInternal && log != nil {
			log.Error(operation, zap.Error(err))
		}
		WriteError(w, ae.Status(), ae.Msg)
		return
	}

	if log != nil {
		log.Error(operation, zap.Error(err))
	}
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// Decode parses a JSON request body into dst, returning a BadRequest
// domain error on malformed input.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	return nil
}
