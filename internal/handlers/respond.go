package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// WriteError maps err to its status and writes {"error": ..., "fields": ...}.
// Internal failures are logged in full and answered with their public message only.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		logger.Error("Unhandled error", "error", err)
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error."})
		return
	}

	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "code", appErr.Code, "error", appErr.Error())
	}
	WriteJSON(w, status, errorBody{Error: appErr.Message, Fields: appErr.Fields})
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}
	return errors.New(errors.ErrCodeBadRequest, "JSON parse error - "+err.Error())
}

// pathID parses the mux variable name as a positive id.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeNotFound, "Not found.")
	}
	return uint(id), nil
}

// queryID parses an optional numeric query filter. Absent means 0.
func queryID(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Validation(map[string]string{name: "Select a valid choice."})
	}
	return uint(id), nil
}
