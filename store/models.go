package store

import "time"

// AppSettings is the presentation-owned state persisted between runs: the
// last source directory, the recursion flag, the interval selection and the
// window geometry.
type AppSettings struct {
	ImageDirectory        string `json:"image_directory"`
	IncludeSubdirs        bool   `json:"include_subdirs"`
	IntervalPresetSeconds int    `json:"interval_preset_seconds"`
	CustomMinutes         int    `json:"custom_minutes"`
	CustomSeconds         int    `json:"custom_seconds"`
	WindowWidth           int    `json:"window_width"`
	WindowHeight          int    `json:"window_height"`
}

// EffectiveIntervalSeconds resolves the interval selection. A positive
// preset wins; preset zero means the custom minutes+seconds entry applies.
func (s *AppSettings) EffectiveIntervalSeconds() int {
	if s.IntervalPresetSeconds > 0 {
		return s.IntervalPresetSeconds
	}
	return s.CustomMinutes*60 + s.CustomSeconds
}

// RecentDir is a previously used source directory for the picker.
type RecentDir struct {
	Path     string    `json:"path"`
	LastUsed time.Time `json:"last_used"`
}

// SessionRecord is one row of the session log.
type SessionRecord struct {
	ID              int64      `json:"id"`
	Directory       string     `json:"directory"`
	ImageCount      int        `json:"image_count"`
	ImagesShown     int        `json:"images_shown"`
	IntervalSeconds int        `json:"interval_seconds"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Completed       bool       `json:"completed"`
}
