// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/feedforge/internal/models"
)

// maxBatchMessages caps a single process-batch call. Larger batches
// should go through the queue, which chunks deliveries itself.
const maxBatchMessages = 100

// BatchRequest is the body of POST /queues/process-batch.
type BatchRequest struct {
	Messages []*models.WriteOperationMessage `json:"messages"`
}

// ProcessMessage applies one write-operation message directly, bypassing
// the queue. This is the manual drain path: operators replay a dead
// lettered or exported message against the storage engine.
//
// @Summary Process one queue message
// @Description Validates and applies a single WriteOperationMessage against the storage engine, exactly as the queue consumer would.
// @Tags Queues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body models.WriteOperationMessage true "Write operation to apply"
// @Success 200 {object} models.ProcessMessageResponse
// @Failure 400 {object} models.ErrorResponse "invalid_message"
// @Failure 401 {object} models.ErrorResponse "unauthorized"
// @Failure 500 {object} models.ErrorResponse "processing_failed"
// @Router /api/v1/queues/process-message [post]
func (h *Handler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(r) {
		respondError(w, r, http.StatusBadRequest, "invalid_message", "Content-Type must be application/json", nil)
		return
	}

	var msg models.WriteOperationMessage
	if err := decodeJSON(r, &msg); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_message", "Invalid write operation message", err)
		return
	}
	if err := msg.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_message", err.Error(), nil)
		return
	}

	if err := h.processor.ProcessMessage(r.Context(), &msg); err != nil {
		respondError(w, r, http.StatusInternalServerError, "processing_failed", "Failed to process message", err)
		return
	}

	respondJSON(w, r, http.StatusOK, models.ProcessMessageResponse{
		Success:        true,
		ProcessedCount: 1,
	})
}

// ProcessBatch applies a batch of write-operation messages in order,
// stopping at the first engine failure.
//
// @Summary Process a batch of queue messages
// @Description Validates every message up front, then applies them in order against the storage engine. A failure partway reports how many messages were applied before it.
// @Tags Queues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param batch body api.BatchRequest true "Messages to apply, at most 100"
// @Success 200 {object} models.ProcessBatchResponse
// @Failure 400 {object} models.ErrorResponse "invalid_batch or invalid_message"
// @Failure 401 {object} models.ErrorResponse "unauthorized"
// @Failure 500 {object} models.ErrorResponse "batch_processing_failed"
// @Router /api/v1/queues/process-batch [post]
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(r) {
		respondError(w, r, http.StatusBadRequest, "invalid_batch", "Content-Type must be application/json", nil)
		return
	}

	var batch BatchRequest
	if err := decodeJSON(r, &batch); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_batch", "Invalid batch request body", err)
		return
	}
	if len(batch.Messages) == 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_batch", "Batch must contain at least one message", nil)
		return
	}
	if len(batch.Messages) > maxBatchMessages {
		respondError(w, r, http.StatusBadRequest, "invalid_batch",
			fmt.Sprintf("Batch must contain at most %d messages", maxBatchMessages), nil)
		return
	}

	// Validate the whole batch before touching storage so a malformed
	// trailing message cannot leave a partial apply behind.
	for i, msg := range batch.Messages {
		if msg == nil {
			respondError(w, r, http.StatusBadRequest, "invalid_message",
				fmt.Sprintf("Message %d is null", i), nil)
			return
		}
		if err := msg.Validate(); err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid_message",
				fmt.Sprintf("Message %d: %v", i, err), nil)
			return
		}
	}

	processed, err := h.processor.ProcessBatch(r.Context(), batch.Messages)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "batch_processing_failed",
			fmt.Sprintf("Processed %d of %d messages before a failure", processed, len(batch.Messages)), err)
		return
	}

	ids := make([]string, len(batch.Messages))
	for i, msg := range batch.Messages {
		ids[i] = msg.ID
	}
	respondJSON(w, r, http.StatusOK, models.ProcessBatchResponse{
		Success:        true,
		ProcessedCount: processed,
		MessageIDs:     ids,
	})
}
