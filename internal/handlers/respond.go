// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the blog API. Handlers
// are grouped by concern (auth, posts, categories, stats) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON serializes v and writes it with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondMessage writes a {"message": ...} body, the error shape every
// endpoint shares.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondInternal logs the underlying error and returns an opaque 500.
func respondInternal(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	respondMessage(w, http.StatusInternalServerError, "Internal server error")
}
