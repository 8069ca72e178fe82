// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/feedforge/internal/canonical"
	"github.com/tomtom215/feedforge/internal/coordinator"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
	"github.com/tomtom215/feedforge/internal/validation"
)

// ListPlaylists returns a page of playlists, optionally filtered to one
// channel's members.
//
// @Summary List playlists
// @Description Returns paginated playlists ordered by creation time. The optional channel filter restricts the page to playlists referenced by that channel.
// @Tags Playlists
// @Produce json
// @Param limit query int false "Page size (1-100)" default(100) minimum(1) maximum(100)
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param sort query string false "Creation-time order" Enums(asc, desc) default(asc)
// @Param channel query string false "Channel UUID or slug to filter by"
// @Success 200 {object} models.PlaylistsResponse
// @Failure 400 {object} models.ErrorResponse "invalid_limit or invalid_channel_id"
// @Router /api/v1/playlists [get]
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	q, qerr := parseListQuery(r)
	if qerr != nil {
		respondError(w, r, http.StatusBadRequest, qerr.tag, qerr.message, nil)
		return
	}

	filter, filtered, ferr := channelFilter(r)
	if ferr != nil {
		respondError(w, r, http.StatusBadRequest, ferr.tag, ferr.message, nil)
		return
	}

	var (
		page *storage.PlaylistPage
		err  error
	)
	if filtered {
		channelID, found, cerr := h.resolveChannelID(r.Context(), filter)
		if cerr != nil {
			respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to resolve channel", cerr)
			return
		}
		if !found {
			respondJSON(w, r, http.StatusOK, models.PlaylistsResponse{Items: []*models.Playlist{}})
			return
		}
		page, err = h.engine.ListPlaylistsByChannel(r.Context(), channelID, q)
	} else {
		page, err = h.engine.ListPlaylists(r.Context(), q)
	}
	if err != nil {
		respondListError(w, r, err, "Failed to list playlists")
		return
	}

	resp := models.PlaylistsResponse{
		Items:   make([]*models.Playlist, len(page.Playlists)),
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	}
	for i := range page.Playlists {
		resp.Items[i] = &page.Playlists[i]
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// GetPlaylist returns one playlist by UUID or slug.
//
// @Summary Get a playlist
// @Tags Playlists
// @Produce json
// @Param id path string true "Playlist UUID or slug"
// @Success 200 {object} models.Playlist
// @Failure 400 {object} models.ErrorResponse "invalid_id"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/playlists/{id} [get]
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Playlist identifier must be a UUID or slug", nil)
		return
	}

	playlist, err := h.engine.GetPlaylist(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "Playlist not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to load playlist", err)
		return
	}

	respondJSON(w, r, http.StatusOK, playlist)
}

// CreatePlaylist signs and stores a new playlist.
//
// @Summary Create a playlist
// @Description Validates, signs, and persists a playlist. With Prefer: respond-async the write is queued and the signed playlist returned immediately with 202.
// @Tags Playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlist body models.PlaylistInput true "Playlist content"
// @Param Prefer header string false "respond-async selects queued persistence"
// @Success 201 {object} models.Playlist "Stored synchronously"
// @Success 202 {object} models.Playlist "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse "invalid_json or validation_error"
// @Failure 401 {object} models.ErrorResponse "unauthorized"
// @Failure 500 {object} models.ErrorResponse "queue_error, storage_error, or internal_error"
// @Router /api/v1/playlists [post]
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var input models.PlaylistInput
	if !h.bindPlaylistInput(w, r, &input) {
		return
	}

	async := preferAsync(r)
	playlist, err := h.coordinator.CreatePlaylist(r.Context(), &input, async)
	if err != nil {
		respondWriteError(w, r, err, "create playlist")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusCreated), playlist)
}

// ReplacePlaylist rebuilds a playlist from a full body, keeping its
// identity fields.
//
// @Summary Replace a playlist
// @Tags Playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Playlist UUID or slug"
// @Param playlist body models.PlaylistInput true "Full replacement content"
// @Success 200 {object} models.Playlist
// @Success 202 {object} models.Playlist "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/playlists/{id} [put]
func (h *Handler) ReplacePlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Playlist identifier must be a UUID or slug", nil)
		return
	}

	var input models.PlaylistInput
	if !h.bindPlaylistInput(w, r, &input) {
		return
	}

	async := preferAsync(r)
	playlist, err := h.coordinator.ReplacePlaylist(r.Context(), id, &input, async)
	if err != nil {
		respondWriteError(w, r, err, "replace playlist")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusOK), playlist)
}

// PatchPlaylist applies a partial update. Protected fields in the body
// are rejected before any field binds; an empty update is a no-op that
// re-signs and returns the stored playlist.
//
// @Summary Update playlist fields
// @Tags Playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Playlist UUID or slug"
// @Param update body models.PlaylistUpdate true "Fields to change"
// @Success 200 {object} models.Playlist
// @Success 202 {object} models.Playlist "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse "protected_fields, invalid_json, or validation_error"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/playlists/{id} [patch]
func (h *Handler) PatchPlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Playlist identifier must be a UUID or slug", nil)
		return
	}

	if !requireJSON(r) {
		respondError(w, r, http.StatusBadRequest, "invalid_json", "Content-Type must be application/json", nil)
		return
	}

	body, err := readBody(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_json", "Could not read request body", err)
		return
	}

	// An absent or empty body is an explicit no-op.
	var update models.PlaylistUpdate
	if len(body) > 0 {
		protected, perr := validation.ProtectedFields(body)
		if perr != nil {
			respondError(w, r, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body", perr)
			return
		}
		if len(protected) > 0 {
			respondError(w, r, http.StatusBadRequest, "protected_fields",
				validation.ProtectedFieldsMessage(protected), nil)
			return
		}

		if err := json.Unmarshal(body, &update); err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body", err)
			return
		}

		if verr := validation.ValidateStruct(&update); verr != nil {
			respondError(w, r, http.StatusBadRequest, "validation_error", verr.Error(), nil)
			return
		}

		if update.DPVersion != "" {
			if verr := validation.ValidateDPVersion(update.DPVersion, h.minDPVersion); verr != nil {
				respondError(w, r, http.StatusBadRequest, "validation_error", verr.Error(), nil)
				return
			}
		}
	}

	async := preferAsync(r)
	playlist, err := h.coordinator.PatchPlaylist(r.Context(), id, &update, async)
	if err != nil {
		respondWriteError(w, r, err, "update playlist")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusOK), playlist)
}

// DeletePlaylist removes a playlist, joined items, and channel
// mappings.
//
// @Summary Delete a playlist
// @Tags Playlists
// @Security BearerAuth
// @Param id path string true "Playlist UUID or slug"
// @Success 204 "Deleted synchronously"
// @Success 202 "Queued for deletion"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/playlists/{id} [delete]
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Playlist identifier must be a UUID or slug", nil)
		return
	}

	async := preferAsync(r)
	if err := h.coordinator.DeletePlaylist(r.Context(), id, async); err != nil {
		respondWriteError(w, r, err, "delete playlist")
		return
	}

	w.WriteHeader(writeStatus(async, http.StatusNoContent))
}

// bindPlaylistInput decodes, validates, and version-gates a full
// playlist body, answering the error response itself. Returns false
// when the request was already answered.
func (h *Handler) bindPlaylistInput(w http.ResponseWriter, r *http.Request, input *models.PlaylistInput) bool {
	if !requireJSON(r) {
		respondError(w, r, http.StatusBadRequest, "invalid_json", "Content-Type must be application/json", nil)
		return false
	}

	if err := decodeJSON(r, input); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body", err)
		return false
	}

	if verr := validation.ValidateStruct(input); verr != nil {
		respondError(w, r, http.StatusBadRequest, "validation_error", verr.Error(), nil)
		return false
	}

	if err := validation.ValidateDPVersion(input.DPVersion, h.minDPVersion); err != nil {
		respondError(w, r, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return false
	}

	return true
}

// respondWriteError maps a coordinator failure onto the error taxonomy:
// queue publish failures, missing resources, reference problems in
// channel bodies, and storage faults each get their tag.
func respondWriteError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, coordinator.ErrQueueUnavailable):
		respondError(w, r, http.StatusInternalServerError, "queue_error", "Failed to queue write operation", err)
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "not_found", "Resource not found", nil)
	case errors.Is(err, storage.ErrInvalidSelfHostedURL):
		respondError(w, r, http.StatusBadRequest, "validation_error",
			"Playlist reference is not a valid self-hosted playlist URL", err)
	case errors.Is(err, storage.ErrSelfHostedPlaylistMissing):
		respondError(w, r, http.StatusBadRequest, "validation_error",
			"Referenced self-hosted playlist does not exist", err)
	case errors.Is(err, canonical.ErrKeyUnavailable):
		respondError(w, r, http.StatusInternalServerError, "internal_error", "Signing key is not available", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to "+action, err)
	}
}

// respondListError maps a listing failure: a cursor the storage layer
// rejects is client input, everything else is a storage fault.
func respondListError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, storage.ErrInvalidCursor) {
		respondError(w, r, http.StatusBadRequest, "validation_error", "Invalid pagination cursor", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "storage_error", message, err)
}
