// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
)

// ListItems returns a page of playlist items, optionally restricted to
// the items of one channel's playlists.
//
// @Summary List playlist items
// @Description Returns paginated playlist items ordered by creation time. The optional channel filter restricts the page to items belonging to that channel's playlists.
// @Tags Playlist Items
// @Produce json
// @Param limit query int false "Page size (1-100)" default(100) minimum(1) maximum(100)
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param sort query string false "Creation-time order" Enums(asc, desc) default(asc)
// @Param channel query string false "Channel UUID or slug to filter by"
// @Success 200 {object} models.PlaylistItemsResponse
// @Failure 400 {object} models.ErrorResponse "invalid_limit or invalid_channel_id"
// @Router /api/v1/playlist-items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
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
		page *storage.ItemPage
		err  error
	)
	if filtered {
		channelID, found, cerr := h.resolveChannelID(r.Context(), filter)
		if cerr != nil {
			respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to resolve channel", cerr)
			return
		}
		if !found {
			respondJSON(w, r, http.StatusOK, models.PlaylistItemsResponse{Items: []*models.PlaylistItem{}})
			return
		}
		page, err = h.engine.ListItemsByChannel(r.Context(), channelID, q)
	} else {
		page, err = h.engine.ListItems(r.Context(), q)
	}
	if err != nil {
		respondListError(w, r, err, "Failed to list playlist items")
		return
	}

	resp := models.PlaylistItemsResponse{
		Items:   make([]*models.PlaylistItem, len(page.Items)),
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	}
	for i := range page.Items {
		resp.Items[i] = &page.Items[i]
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// GetItem returns one playlist item. Items carry server-assigned UUIDs
// and no slugs, so the identifier must be a UUID.
//
// @Summary Get a playlist item
// @Tags Playlist Items
// @Produce json
// @Param id path string true "Item UUID"
// @Success 200 {object} models.PlaylistItem
// @Failure 400 {object} models.ErrorResponse "invalid_id"
// @Failure 404 {object} models.ErrorResponse "not_found"
// @Router /api/v1/playlist-items/{id} [get]
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isUUIDv4(id) {
		respondError(w, r, http.StatusBadRequest, "invalid_id", "Item identifier must be a UUID", nil)
		return
	}

	item, err := h.engine.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "Playlist item not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "storage_error", "Failed to load playlist item", err)
		return
	}

	respondJSON(w, r, http.StatusOK, item)
}
