// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package models

// Channel is a signed, curated collection of playlist references.
//
// Playlists holds absolute URLs; each is resolved at save time, either
// against the local store (self-hosted domains) or by fetching and
// validating the remote document. Identity fields follow the same
// server-assigned rules as Playlist.
type Channel struct {
	ID             string           `json:"id" validate:"required,uuid4"`
	Slug           string           `json:"slug" validate:"required,slugid,max=64"`
	Title          string           `json:"title" validate:"required,max=256"`
	Curator        string           `json:"curator" validate:"required,max=128"`
	Created        string           `json:"created" validate:"required,rfc3339"`
	Curators       []Curator        `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string           `json:"summary,omitempty" validate:"omitempty,max=4096"`
	Publisher      *Curator         `json:"publisher,omitempty"`
	CoverImage     string           `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any `json:"dynamicQueries,omitempty"`
	Playlists      []string         `json:"playlists" validate:"required,min=1,dive,url"`
	Signature      string           `json:"signature,omitempty" validate:"omitempty,ed25519sig"`
}

// ChannelInput is the client-supplied body for POST and PUT on channels.
type ChannelInput struct {
	Title          string           `json:"title" validate:"required,max=256"`
	Curator        string           `json:"curator" validate:"required,max=128"`
	Curators       []Curator        `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string           `json:"summary,omitempty" validate:"omitempty,max=4096"`
	Publisher      *Curator         `json:"publisher,omitempty"`
	CoverImage     string           `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any `json:"dynamicQueries,omitempty"`
	Playlists      []string         `json:"playlists" validate:"required,min=1,dive,url"`
}

// ChannelUpdate is the client-supplied body for PATCH on channels.
type ChannelUpdate struct {
	Title          string           `json:"title,omitempty" validate:"omitempty,max=256"`
	Curator        string           `json:"curator,omitempty" validate:"omitempty,max=128"`
	Curators       []Curator        `json:"curators,omitempty" validate:"omitempty,dive"`
	Summary        string           `json:"summary,omitempty" validate:"omitempty,max=4096"`
	Publisher      *Curator         `json:"publisher,omitempty"`
	CoverImage     string           `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries []map[string]any `json:"dynamicQueries,omitempty"`
	Playlists      []string         `json:"playlists,omitempty" validate:"omitempty,min=1,dive,url"`
}
