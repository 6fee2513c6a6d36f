// Package models tracks all api models for requests and responses
package models

import "github.com/acarlisle/figuredraw/store"

type StartSessionRequest struct {
	// Directory overrides the persisted source directory when set.
	Directory       string `json:"directory"`
	IncludeSubdirs  *bool  `json:"include_subdirs,omitempty"`
	IntervalSeconds *int   `json:"interval_seconds,omitempty"`
}

type SessionStatusResponse struct {
	State            string `json:"state"`
	Directory        string `json:"directory"`
	Position         int    `json:"position"`
	Total            int    `json:"total"`
	ImagesShown      int    `json:"images_shown"`
	RemainingSeconds int    `json:"remaining_seconds"`
	IntervalSeconds  int    `json:"interval_seconds"`
	ElapsedSeconds   int    `json:"elapsed_seconds"`
}

type UpdateSettingsRequest struct {
	ImageDirectory        string `json:"image_directory"`
	IncludeSubdirs        bool   `json:"include_subdirs"`
	IntervalPresetSeconds int    `json:"interval_preset_seconds"`
	CustomMinutes         int    `json:"custom_minutes"`
	CustomSeconds         int    `json:"custom_seconds"`
	WindowWidth           int    `json:"window_width"`
	WindowHeight          int    `json:"window_height"`
}

type SettingsResponse struct {
	Settings   store.AppSettings `json:"settings"`
	RecentDirs []store.RecentDir `json:"recent_dirs"`
}

type Pack struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	ImageCount int    `json:"image_count"`
	SizeBytes  int64  `json:"size_bytes"`
	Remote     bool   `json:"remote"`
}

type PackListResponse struct {
	Packs      []Pack `json:"packs"`
	LibraryDir string `json:"library_dir"`
}

type SessionListResponse struct {
	Sessions []store.SessionRecord `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// WSMessage is the envelope for every event pushed to viewers.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Event types carried in WSMessage.Type.
const (
	WSImageChanged    = "image_changed"
	WSCountdownUpdate = "countdown_update"
	WSStateChanged    = "state_changed"
	WSSessionComplete = "session_complete"
	WSSessionError    = "session_error"
	WSPacksUpdated    = "packs_updated"
)

type ImageChangedEvent struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

type CountdownEvent struct {
	RemainingSeconds int `json:"remaining_seconds"`
	IntervalSeconds  int `json:"interval_seconds"`
}

type StateChangedEvent struct {
	State string `json:"state"`
}

type SessionErrorEvent struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
