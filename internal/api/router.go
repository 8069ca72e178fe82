// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/feedforge/internal/auth"
	"github.com/tomtom215/feedforge/internal/middleware"
)

// Router wires handlers, middleware, and the authenticator into the
// HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authenticator auth.Authenticator
}

// NewRouter creates a router. The authenticator guards every write
// route; reads are public because signed feeds are public documents.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authenticator auth.Authenticator) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authenticator: authenticator,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "not_found", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed for this resource", nil)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(5))
		r.Use(middleware.Prometheus)
		r.Use(middleware.RequestLogger)

		r.Get("/", router.handler.Root)
		r.Get("/health", router.handler.Health)

		// Playlists: public reads, bearer-gated writes
		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", router.handler.ListPlaylists)
			r.Get("/{id}", router.handler.GetPlaylist)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Use(auth.Middleware(router.authenticator))

				r.Post("/", router.handler.CreatePlaylist)
				r.Put("/{id}", router.handler.ReplacePlaylist)
				r.Patch("/{id}", router.handler.PatchPlaylist)
				r.Delete("/{id}", router.handler.DeletePlaylist)
			})
		})

		// Playlist items are derived from playlists and therefore
		// read-only over HTTP
		r.Route("/playlist-items", func(r chi.Router) {
			r.Get("/", router.handler.ListItems)
			r.Get("/{id}", router.handler.GetItem)
		})

		// Channels: same split as playlists
		r.Route("/channels", func(r chi.Router) {
			r.Get("/", router.handler.ListChannels)
			r.Get("/{id}", router.handler.GetChannel)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Use(auth.Middleware(router.authenticator))

				r.Post("/", router.handler.CreateChannel)
				r.Put("/{id}", router.handler.ReplaceChannel)
				r.Patch("/{id}", router.handler.PatchChannel)
				r.Delete("/{id}", router.handler.DeleteChannel)
			})
		})

		// Queue ingest: manual drain of write-operation messages
		r.Route("/queues", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Use(auth.Middleware(router.authenticator))

			r.Post("/process-message", router.handler.ProcessMessage)
			r.Post("/process-batch", router.handler.ProcessBatch)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
