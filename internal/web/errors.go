package web

// errors.go provides unified error responses for the web layer.
//
// The flow: a handler encounters an error, calls respondError, the error is
// mapped via core.MapError to a user message with a support code, the
// technical error is logged with the request id, and the client receives the
// sanitized JSON body. Filesystem paths and OS detail never reach clients.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailmorph/mailmorph/internal/core"
)

// ErrorResponse is the JSON structure for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	RowsMax int    `json:"rowsMax,omitempty"`
}

// respondError maps err to a user message, logs the technical detail, and
// writes the JSON error body.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	resp := ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	}

	// Field-level and limit detail help interactive clients highlight inputs.
	var df *core.DomainFault
	if errors.As(err, &df) {
		resp.Field = df.Field
	}
	var vf *core.ValidationFault
	if errors.As(err, &vf) && vf.Kind == core.FaultRowLimitExceeded {
		resp.Rows = vf.Rows
		resp.RowsMax = vf.Limit
	}

	writeJSONStatus(w, resp, statusCode)
}

// respondErrorMessage writes a plain error message without mapping.
func respondErrorMessage(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	respondError(w, r, errors.New(message), statusCode)
}

// statusForError chooses the HTTP status for a core error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	}

	var vf *core.ValidationFault
	if errors.As(err, &vf) {
		return http.StatusUnprocessableEntity
	}
	var df *core.DomainFault
	if errors.As(err, &df) {
		return http.StatusBadRequest
	}
	var sf *core.StorageFault
	if errors.As(err, &sf) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// writeJSON encodes v as JSON with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, v, http.StatusOK)
}

// writeJSONStatus encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSONStatus(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
