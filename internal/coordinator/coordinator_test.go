// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/canonical"
	"github.com/tomtom215/feedforge/internal/kv"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/queue"
	"github.com/tomtom215/feedforge/internal/storage"
)

const (
	testDomain = "feed.test"

	// RFC 8032 test vector 1 seed.
	testSigningSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
)

var (
	slugForm      = regexp.MustCompile(`^[a-z0-9-]+-\d{4}$`)
	signatureForm = regexp.MustCompile(`^ed25519:0x[0-9a-f]{128}$`)
)

// testRig bundles a coordinator with the collaborators tests assert on.
type testRig struct {
	coordinator *Coordinator
	engine      *storage.Engine
	queue       *queue.MemoryQueue
	signer      *canonical.Signer
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: []string{testDomain},
	})

	mq := queue.NewMemoryQueue("feedforge.writes", queue.NewLoggerAdapter())
	t.Cleanup(func() { _ = mq.Close() })

	signer := canonical.NewSigner(testSigningSeed)

	return &testRig{
		coordinator: New(engine, signer, mq),
		engine:      engine,
		queue:       mq,
		signer:      signer,
	}
}

func playlistInput(title string, itemCount int) *models.PlaylistInput {
	items := make([]models.PlaylistItemInput, itemCount)
	for i := range items {
		items[i] = models.PlaylistItemInput{
			Source: fmt.Sprintf("https://artworks.example.com/piece-%d.html", i),
		}
	}
	return &models.PlaylistInput{
		DPVersion: "1.0.0",
		Title:     title,
		Items:     items,
	}
}

func channelInput(title string, urls ...string) *models.ChannelInput {
	return &models.ChannelInput{
		Title:     title,
		Curator:   "Test Curator",
		Playlists: urls,
	}
}

// receiveOperation drains one message from the queue and decodes it.
func receiveOperation(t *testing.T, mq *queue.MemoryQueue) *models.WriteOperationMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := mq.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		var op models.WriteOperationMessage
		if err := json.Unmarshal(msg.Payload, &op); err != nil {
			t.Fatalf("decode queued operation: %v", err)
		}
		return &op
	case <-ctx.Done():
		t.Fatal("timed out waiting for queued operation")
		return nil
	}
}

// failingPublisher simulates a broker outage.
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, queue.Outgoing) error {
	return errors.New("broker down")
}

func (failingPublisher) PublishBatch(context.Context, []queue.Outgoing) error {
	return errors.New("broker down")
}

func (failingPublisher) Close() error { return nil }

func TestCreatePlaylistSynthesizesIdentity(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	playlist, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Morning Light", 3), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	if _, err := uuid.Parse(playlist.ID); err != nil {
		t.Errorf("id %q is not a UUID: %v", playlist.ID, err)
	}
	if !slugForm.MatchString(playlist.Slug) {
		t.Errorf("slug %q does not match expected form", playlist.Slug)
	}
	if _, err := time.Parse(time.RFC3339, playlist.Created); err != nil {
		t.Errorf("created %q is not RFC 3339: %v", playlist.Created, err)
	}
	if !signatureForm.MatchString(playlist.Signature) {
		t.Errorf("signature %q does not match expected form", playlist.Signature)
	}

	seen := make(map[string]struct{})
	var previous time.Time
	for i, item := range playlist.Items {
		if _, err := uuid.Parse(item.ID); err != nil {
			t.Errorf("item %d id %q is not a UUID", i, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			t.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = struct{}{}

		created, err := time.Parse(time.RFC3339, item.Created)
		if err != nil {
			t.Fatalf("item %d created %q: %v", i, item.Created, err)
		}
		if i > 0 && !created.After(previous) {
			t.Errorf("item %d created %v not after item %d created %v", i, created, i-1, previous)
		}
		previous = created
	}

	stored, err := rig.engine.GetPlaylist(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("playlist not persisted: %v", err)
	}
	if stored.Signature != playlist.Signature {
		t.Error("stored signature differs from returned signature")
	}
}

func TestCreatePlaylistSignatureVerifies(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	playlist, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Verified Work", 1), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	stored, err := rig.engine.GetPlaylist(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal stored playlist: %v", err)
	}
	canonicalBytes, err := canonical.Canonicalize(raw)
	if err != nil {
		t.Fatalf("canonicalize stored playlist: %v", err)
	}

	if err := rig.signer.Verify(canonicalBytes, stored.Signature); err != nil {
		t.Errorf("stored signature does not verify: %v", err)
	}
}

func TestCreatePlaylistDistinctSlugsForSameTitle(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	first, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Same Title", 1), false)
	if err != nil {
		t.Fatalf("first CreatePlaylist() error = %v", err)
	}
	second, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Same Title", 1), false)
	if err != nil {
		t.Fatalf("second CreatePlaylist() error = %v", err)
	}

	if first.ID == second.ID {
		t.Error("identical ids for two creates")
	}
	if first.Slug == second.Slug {
		t.Errorf("identical slugs %q for two creates", first.Slug)
	}
}

func TestReplacePlaylistPreservesIdentity(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	original, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("First Draft", 2), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	replaced, err := rig.coordinator.ReplacePlaylist(ctx, original.ID, playlistInput("Final Cut", 1), false)
	if err != nil {
		t.Fatalf("ReplacePlaylist() error = %v", err)
	}

	if replaced.ID != original.ID {
		t.Errorf("id changed on replace: %q -> %q", original.ID, replaced.ID)
	}
	if replaced.Slug != original.Slug {
		t.Errorf("slug changed on replace: %q -> %q", original.Slug, replaced.Slug)
	}
	if replaced.Created != original.Created {
		t.Errorf("created changed on replace: %q -> %q", original.Created, replaced.Created)
	}
	if replaced.Title != "Final Cut" {
		t.Errorf("title = %q, want %q", replaced.Title, "Final Cut")
	}
	if replaced.Signature == original.Signature {
		t.Error("signature did not change for different content")
	}

	for _, item := range original.Items {
		if _, err := rig.engine.GetItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("old item %s survived replace, error = %v", item.ID, err)
		}
	}
	for _, item := range replaced.Items {
		if item.ID == original.Items[0].ID || item.ID == original.Items[1].ID {
			t.Error("item identity survived replace")
		}
	}
}

func TestReplacePlaylistMissing(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	_, err := rig.coordinator.ReplacePlaylist(context.Background(), uuid.New().String(), playlistInput("Nothing", 1), false)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestPatchPlaylistMergesFields(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	input := playlistInput("Patchable", 2)
	input.Summary = "Original summary"
	original, err := rig.coordinator.CreatePlaylist(ctx, input, false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	patched, err := rig.coordinator.PatchPlaylist(ctx, original.Slug, &models.PlaylistUpdate{
		Title: "Patched Title",
	}, false)
	if err != nil {
		t.Fatalf("PatchPlaylist() error = %v", err)
	}

	if patched.Title != "Patched Title" {
		t.Errorf("title = %q, want %q", patched.Title, "Patched Title")
	}
	if patched.Summary != "Original summary" {
		t.Errorf("summary lost in patch: %q", patched.Summary)
	}
	if patched.Slug != original.Slug {
		t.Errorf("slug changed on patch: %q -> %q", original.Slug, patched.Slug)
	}

	// Items were not in the update, so their identity is untouched.
	if len(patched.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(patched.Items))
	}
	for i, item := range patched.Items {
		if item.ID != original.Items[i].ID {
			t.Errorf("item %d id changed without items in the update", i)
		}
	}

	if patched.Signature == original.Signature {
		t.Error("signature did not change for different content")
	}
}

func TestPatchPlaylistRebuildsItems(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	original, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Item Swap", 1), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	patched, err := rig.coordinator.PatchPlaylist(ctx, original.ID, &models.PlaylistUpdate{
		Items: []models.PlaylistItemInput{
			{Source: "https://artworks.example.com/swapped.html"},
		},
	}, false)
	if err != nil {
		t.Fatalf("PatchPlaylist() error = %v", err)
	}

	if patched.Items[0].ID == original.Items[0].ID {
		t.Error("item identity survived a patch that replaced items")
	}
	if _, err := rig.engine.GetItem(ctx, original.Items[0].ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("old item survived patch, error = %v", err)
	}
}

func TestDeletePlaylistSync(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	playlist, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Doomed", 1), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	if err := rig.coordinator.DeletePlaylist(ctx, playlist.Slug, false); err != nil {
		t.Fatalf("DeletePlaylist() error = %v", err)
	}
	if _, err := rig.engine.GetPlaylist(ctx, playlist.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("playlist survived delete, error = %v", err)
	}

	if err := rig.coordinator.DeletePlaylist(ctx, playlist.ID, false); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete error = %v, want storage.ErrNotFound", err)
	}
}

func TestCreatePlaylistAsyncPublishes(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	playlist, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Queued Work", 1), true)
	if err != nil {
		t.Fatalf("CreatePlaylist(async) error = %v", err)
	}

	// Async means nothing persisted yet.
	if _, err := rig.engine.GetPlaylist(ctx, playlist.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("async create persisted synchronously, error = %v", err)
	}

	op := receiveOperation(t, rig.queue)
	if op.Operation != models.OperationCreatePlaylist {
		t.Errorf("operation = %q, want %q", op.Operation, models.OperationCreatePlaylist)
	}
	if op.Data.Playlist == nil || op.Data.Playlist.ID != playlist.ID {
		t.Errorf("queued payload does not carry playlist %s", playlist.ID)
	}
	if op.Data.Playlist.Signature != playlist.Signature {
		t.Error("queued payload carries a different signature")
	}
	if err := op.Validate(); err != nil {
		t.Errorf("queued message fails validation: %v", err)
	}
}

func TestDeletePlaylistAsyncResolvesSlug(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	ctx := context.Background()

	playlist, err := rig.coordinator.CreatePlaylist(ctx, playlistInput("Slug Target", 1), false)
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	if err := rig.coordinator.DeletePlaylist(ctx, playlist.Slug, true); err != nil {
		t.Fatalf("DeletePlaylist(async) error = %v", err)
	}

	op := receiveOperation(t, rig.queue)
	if op.Operation != models.OperationDeletePlaylist {
		t.Errorf("operation = %q, want %q", op.Operation, models.OperationDeletePlaylist)
	}
	if op.Data.PlaylistID != playlist.ID {
		t.Errorf("queued playlistId = %q, want %q", op.Data.PlaylistID, playlist.ID)
	}
}

func TestAsyncPublishFailureSurfaces(t *testing.T) {
	t.Parallel()

	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: []string{testDomain},
	})

	c := New(engine, canonical.NewSigner(testSigningSeed), failingPublisher{})

	_, err := c.CreatePlaylist(context.Background(), playlistInput("Unqueueable", 1), true)
	if !errors.Is(err, ErrQueueUnavailable) {
		t.Fatalf("error = %v, want ErrQueueUnavailable", err)
	}
}
