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

	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
	"github.com/tomtom215/feedforge/internal/validation"
)

// ListChannels returns a page of channels.
//
// @Summary List channels
// @Description Returns paginated channels ordered by creation time.
// @Tags Channels
// @Produce json
// @Param limit query int false "Page size (1-100)" default(100) minimum(1) maximum(100)
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param sort query string false "Creation-time order" Enums(asc, desc) default(asc)
// @Success 200 {object} models.ChannelsResponse
// @Failure 400 {object} models.ErrorResponse "invalid_limit"
// @Router /api/v1/channels [get]
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	q, qerr := parseListQuery(r)
	if qerr != nil {
		respondError(w, r, http.StatusBadRequest, qerr.tag, qerr.message, nil)
		return
	}

	page, err := h.engine.ListChannels(r.Context(), q)
	if err != nil {
		respondListError(w, r, err, "Failed to list channels")
		return
	}

	resp := models.ChannelsResponse{
		Items:   make([]*models.Channel, len(page.Channels)),
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	}
	for i := range page.Channels {
		resp.Items[i] = &page.Channels[i]
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// GetChannel returns one channel by UUID or slug.
//
// @Summary Get a channel
// @Tags Channels
// @Produce json
// @Param id path string true "Channel UUID or slug"
// @Success 200 {object} models.Channel
// @Failure 400 {object} models.ErrorResponse "invalid_id"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/channels/{id} [get]
func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Channel identifier must be a UUID or slug", nil)
		return
	}

	channel, err := h.engine.GetChannel(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "Channel not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to load channel", err)
		return
	}

	respondJSON(w, r, http.StatusOK, channel)
}

// CreateChannel resolves playlist references, signs, and stores a new
// channel.
//
// @Summary Create a channel
// @Description Validates the body, resolves every playlist reference (self-hosted against the local store, external by fetching and verifying the document), signs, and persists. With Prefer: respond-async the write is queued and the signed channel returned immediately with 202.
// @Tags Channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel body models.ChannelInput true "Channel content"
// @Param Prefer header string false "respond-async selects queued persistence"
// @Success 201 {object} models.Channel "Stored synchronously"
// @Success 202 {object} models.Channel "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse "invalid_json or validation_error"
// @Failure 401 {object} models.ErrorResponse "unauthorized"
// @Failure 500 {object} models.ErrorResponse "queue_error, storage_error, or internal_error"
// @Router /api/v1/channels [post]
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var input models.ChannelInput
	if !h.bindChannelInput(w, r, &input) {
		return
	}

	async := preferAsync(r)
	channel, err := h.coordinator.CreateChannel(r.Context(), &input, async)
	if err != nil {
		respondWriteError(w, r, err, "create channel")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusCreated), channel)
}

// ReplaceChannel rebuilds a channel from a full body, keeping its
// identity fields.
//
// @Summary Replace a channel
// @Tags Channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Channel UUID or slug"
// @Param channel body models.ChannelInput true "Full replacement content"
// @Success 200 {object} models.Channel
// @Success 202 {object} models.Channel "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/channels/{id} [put]
func (h *Handler) ReplaceChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Channel identifier must be a UUID or slug", nil)
		return
	}

	var input models.ChannelInput
	if !h.bindChannelInput(w, r, &input) {
		return
	}

	async := preferAsync(r)
	channel, err := h.coordinator.ReplaceChannel(r.Context(), id, &input, async)
	if err != nil {
		respondWriteError(w, r, err, "replace channel")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusOK), channel)
}

// PatchChannel applies a partial update. Protected fields in the body
// are rejected before any field binds; an empty update is a no-op that
// re-signs and returns the stored channel.
//
// @Summary Update channel fields
// @Tags Channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Channel UUID or slug"
// @Param update body models.ChannelUpdate true "Fields to change"
// @Success 200 {object} models.Channel
// @Success 202 {object} models.Channel "Queued for persistence"
// @Failure 400 {object} models.ErrorResponse "protected_fields, invalid_json, or validation_error"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/channels/{id} [patch]
func (h *Handler) PatchChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Channel identifier must be a UUID or slug", nil)
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
	var update models.ChannelUpdate
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
	}

	async := preferAsync(r)
	channel, err := h.coordinator.PatchChannel(r.Context(), id, &update, async)
	if err != nil {
		respondWriteError(w, r, err, "update channel")
		return
	}

	respondJSON(w, r, writeStatus(async, http.StatusOK), channel)
}

// DeleteChannel removes a channel and its playlist mappings.
//
// @Summary Delete a channel
// @Tags Channels
// @Security BearerAuth
// @Param id path string true "Channel UUID or slug"
// @Success 204 "Deleted synchronously"
// @Success 202 "Queued for deletion"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/channels/{id} [delete]
func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Channel identifier must be a UUID or slug", nil)
		return
	}

	async := preferAsync(r)
	if err := h.coordinator.DeleteChannel(r.Context(), id, async); err != nil {
		respondWriteError(w, r, err, "delete channel")
		return
	}

	w.WriteHeader(writeStatus(async, http.StatusNoContent))
}

// bindChannelInput decodes and validates a full channel body, answering
// the error response itself. Returns false when the request was already
// answered. Playlist references are validated structurally here; their
// resolution happens in the coordinator.
func (h *Handler) bindChannelInput(w http.ResponseWriter, r *http.Request, input *models.ChannelInput) bool {
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

	return true
}
