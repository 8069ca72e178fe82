// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package storage

import (
	"fmt"
	"time"
)

// Key prefixes for the multi-index schema. Record keys hold JSON, slug keys
// hold the record id, created-index keys hold the record id, and mapping
// keys hold the id named by their last segment.
const (
	prefixPlaylistByID       = "playlist:id:"
	prefixPlaylistBySlug     = "playlist:slug:"
	prefixPlaylistCreated    = "playlist:created:"
	prefixItemByID           = "playlist-item:id:"
	prefixItemCreated        = "playlist-item:created:"
	prefixChannelByID        = "channel:id:"
	prefixChannelBySlug      = "channel:slug:"
	prefixChannelCreated     = "channel:created:"
	prefixChannelToPlaylists = "channel-to-playlists:"
	prefixPlaylistToChannels = "playlist-to-channels:"
	prefixItemByChannel      = "playlist-item:channel:"
)

// Sort directions as they appear inside created-index keys.
const (
	sortAsc  = "asc"
	sortDesc = "desc"
)

// indexTimeLayout is the fixed-width UTC form used inside created-index
// keys. Fixed width keeps lexicographic order equal to chronological
// order regardless of the precision stored on the record itself.
const indexTimeLayout = "2006-01-02T15:04:05.000Z"

// indexTimestamp renders an RFC 3339 created value into the fixed-width
// index form.
func indexTimestamp(created string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return "", fmt.Errorf("parsing created timestamp %q: %w", created, err)
	}
	return t.UTC().Format(indexTimeLayout), nil
}

// invertTimestamp complements each byte within the printable ASCII range
// so that lexicographic order of the result is the reverse of the input.
// Index timestamps are fixed-width printable ASCII, which makes the
// per-byte complement order-inverting.
func invertTimestamp(ts string) string {
	b := []byte(ts)
	for i, c := range b {
		b[i] = '~' - (c - ' ')
	}
	return string(b)
}

func playlistKey(id string) string       { return prefixPlaylistByID + id }
func playlistSlugKey(slug string) string { return prefixPlaylistBySlug + slug }

func playlistCreatedKey(sort, ts, id string) string {
	return createdKey(prefixPlaylistCreated, sort, ts, id)
}

func itemKey(id string) string { return prefixItemByID + id }

func itemCreatedKey(sort, ts, id string) string {
	return createdKey(prefixItemCreated, sort, ts, id)
}

func channelKey(id string) string       { return prefixChannelByID + id }
func channelSlugKey(slug string) string { return prefixChannelBySlug + slug }

func channelCreatedKey(sort, ts, id string) string {
	return createdKey(prefixChannelCreated, sort, ts, id)
}

// createdKey builds "<prefix><sort>:<ts>:<id>", inverting the timestamp
// for the descending index so both directions are plain forward scans.
func createdKey(prefix, sort, ts, id string) string {
	if sort == sortDesc {
		ts = invertTimestamp(ts)
	}
	return prefix + sort + ":" + ts + ":" + id
}

// createdPrefix is the scan prefix for one direction of a created index.
func createdPrefix(prefix, sort string) string {
	return prefix + sort + ":"
}

func channelToPlaylistsKey(channelID, playlistID string) string {
	return prefixChannelToPlaylists + channelID + ":" + playlistID
}

// channelToPlaylistsPrefix scans every playlist mapped under a channel.
func channelToPlaylistsPrefix(channelID string) string {
	return prefixChannelToPlaylists + channelID + ":"
}

func playlistToChannelsKey(playlistID, channelID string) string {
	return prefixPlaylistToChannels + playlistID + ":" + channelID
}

// playlistToChannelsPrefix scans every channel a playlist is mapped into.
func playlistToChannelsPrefix(playlistID string) string {
	return prefixPlaylistToChannels + playlistID + ":"
}

func itemByChannelKey(channelID, playlistID, itemID string) string {
	return prefixItemByChannel + channelID + ":" + playlistID + ":" + itemID
}

// itemsByChannelPrefix scans every item mapped under a channel.
func itemsByChannelPrefix(channelID string) string {
	return prefixItemByChannel + channelID + ":"
}

// itemsByChannelPlaylistPrefix scans a single playlist's items under a
// channel.
func itemsByChannelPlaylistPrefix(channelID, playlistID string) string {
	return prefixItemByChannel + channelID + ":" + playlistID + ":"
}
