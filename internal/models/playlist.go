// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package models

// Playlist is a signed, ordered sequence of artwork items.
//
// The id, slug, created and signature fields are server-assigned and
// immutable; the signature binds the canonical bytes of every other field
// and is recomputed on every mutation.
type Playlist struct {
	DPVersion      string           `json:"dpVersion" validate:"required"`
	ID             string           `json:"id" validate:"required,uuid4"`
	Slug           string           `json:"slug" validate:"required,slugid,max=64"`
	Title          string           `json:"title" validate:"required,max=256"`
	Created        string           `json:"created" validate:"required,rfc3339"`
	Defaults       map[string]any   `json:"defaults,omitempty"`
	Curators       []Curator        `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string           `json:"summary,omitempty" validate:"omitempty,max=4096"`
	CoverImage     string           `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any `json:"dynamicQueries,omitempty"`
	Items          []PlaylistItem   `json:"items" validate:"required,min=1,dive"`
	Signature      string           `json:"signature,omitempty" validate:"omitempty,ed25519sig"`
}

// PlaylistItem is one artwork reference inside a playlist.
//
// Item ids are regenerated on every save that replaces the item set, and
// created is assigned monotonically within a single save so that item order
// survives a timestamp sort.
type PlaylistItem struct {
	ID         string           `json:"id" validate:"required,uuid4"`
	Title      string           `json:"title,omitempty" validate:"omitempty,max=500"`
	Source     string           `json:"source" validate:"required,url"`
	Duration   int              `json:"duration,omitempty" validate:"omitempty,min=1"`
	License    string           `json:"license,omitempty" validate:"omitempty,oneof=open token subscription"`
	Created    string           `json:"created,omitempty" validate:"omitempty,rfc3339"`
	Ref        string           `json:"ref,omitempty" validate:"omitempty,url"`
	Override   map[string]any   `json:"override,omitempty"`
	Display    map[string]any   `json:"display,omitempty"`
	Repro      *ReproBlock      `json:"repro,omitempty"`
	Provenance *ProvenanceBlock `json:"provenance,omitempty"`
}

// ReproBlock carries reproduction verification data for generative works.
type ReproBlock struct {
	EngineVersion map[string]string `json:"engineVersion,omitempty"`
	Seed          string            `json:"seed,omitempty" validate:"omitempty,hexadecimal"`
	AssetsSHA256  []string          `json:"assetsSHA256,omitempty" validate:"omitempty,dive,len=64,hexadecimal"`
	FrameHash     map[string]string `json:"frameHash,omitempty"`
}

// ProvenanceBlock records where an artwork's authority lives.
type ProvenanceBlock struct {
	Type         string           `json:"type" validate:"required,oneof=onChain seriesRegistry offChainURI"`
	Contract     map[string]any   `json:"contract,omitempty"`
	Dependencies []map[string]any `json:"dependencies,omitempty"`
}

// Curator identifies a curating party on playlists and channels.
// Key, when present, is a did:key identifier.
type Curator struct {
	Name string `json:"name" validate:"required,max=128"`
	Key  string `json:"key,omitempty" validate:"omitempty,didkey"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// PlaylistInput is the client-supplied body for POST and PUT on playlists.
// Server-controlled fields are absent; items carry no id or created.
type PlaylistInput struct {
	DPVersion      string              `json:"dpVersion" validate:"required"`
	Title          string              `json:"title" validate:"required,max=256"`
	Defaults       map[string]any      `json:"defaults,omitempty"`
	Curators       []Curator           `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string              `json:"summary,omitempty" validate:"omitempty,max=4096"`
	CoverImage     string              `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any    `json:"dynamicQueries,omitempty"`
	Items          []PlaylistItemInput `json:"items" validate:"required,min=1,dive"`
}

// PlaylistItemInput is the client-supplied shape of one item.
type PlaylistItemInput struct {
	Title      string           `json:"title,omitempty" validate:"omitempty,max=500"`
	Source     string           `json:"source" validate:"required,url"`
	Duration   int              `json:"duration,omitempty" validate:"omitempty,min=1"`
	License    string           `json:"license,omitempty" validate:"omitempty,oneof=open token subscription"`
	Ref        string           `json:"ref,omitempty" validate:"omitempty,url"`
	Override   map[string]any   `json:"override,omitempty"`
	Display    map[string]any   `json:"display,omitempty"`
	Repro      *ReproBlock      `json:"repro,omitempty"`
	Provenance *ProvenanceBlock `json:"provenance,omitempty"`
}

// PlaylistUpdate is the client-supplied body for PATCH on playlists.
// Every field is optional; presence of a protected field in the raw body is
// rejected before this type is ever populated.
type PlaylistUpdate struct {
	DPVersion      string              `json:"dpVersion,omitempty"`
	Title          string              `json:"title,omitempty" validate:"omitempty,max=256"`
	Defaults       map[string]any      `json:"defaults,omitempty"`
	Curators       []Curator           `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string              `json:"summary,omitempty" validate:"omitempty,max=4096"`
	CoverImage     string              `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any    `json:"dynamicQueries,omitempty"`
	Items          []PlaylistItemInput `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}
