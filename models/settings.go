package models

import (
	"time"
)

// ProfileStyle controls the verbosity of AI-generated profile text.
type ProfileStyle string

const (
	StyleSimple   ProfileStyle = "simple"
	StyleDetailed ProfileStyle = "detailed"
)

// Settings holds per-user display and notification preferences.
// One row per user, created lazily with defaults on first read.
type Settings struct {
	UserID             string       `json:"user_id"`
	ProfileStyle       ProfileStyle `json:"profile_style"`
	ShowInPublicSearch bool         `json:"show_in_public_search"`
	EmailOnProfileView bool         `json:"email_on_profile_view"`
	EmailProfileTips   bool         `json:"email_profile_tips"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// DefaultSettings returns the settings row created on first read.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:             userID,
		ProfileStyle:       StyleSimple,
		ShowInPublicSearch: true,
		EmailOnProfileView: false,
		EmailProfileTips:   true,
	}
}
