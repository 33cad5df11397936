package httputil

import (
	"log/slog"
	"net/http"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeError(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	writeError(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	writeError(w, msg, http.StatusNotFound)
}

func Conflict(w http.ResponseWriter, msg string) {
	slog.Warn("conflict", "message", msg)
	writeError(w, msg, http.StatusConflict)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	slog.Warn("unauthorized", "message", msg)
	writeError(w, msg, http.StatusUnauthorized)
}

func Forbidden(w http.ResponseWriter, msg string) {
	slog.Warn("forbidden", "message", msg)
	writeError(w, msg, http.StatusForbidden)
}
