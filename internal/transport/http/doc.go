// Package http provides the HTTP transport layer for the ledger analysis
// service. Handlers follow chi routing conventions: each handler exposes a
// Routes() method returning a chi.Router mounted under /api, and responses
// are rendered with go-chi/render.
package http
