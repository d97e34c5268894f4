package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform tags where a Game comes from.
type Platform string

const (
	PlatformSteam Platform = "steam"
	PlatformLocal Platform = "local"
)

// SessionSource tags who recorded a PlaySession.
type SessionSource string

const (
	SourceSteamAPI    SessionSource = "steam_api"
	SourceLocalClient SessionSource = "local_client"
)

// Game is a title in a user's library. (user_id, steam_app_id) is unique; rows without an
// app id never collide.
type Game struct {
	ID              string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_games_user_app,priority:1" json:"user_id"`
	Name            string        `gorm:"type:varchar(255);not null" json:"name"`
	Platform        Platform      `gorm:"type:varchar(16);not null;index" json:"platform"`
	SteamAppID      *int64        `gorm:"uniqueIndex:idx_games_user_app,priority:2" json:"steam_app_id,omitempty"`
	ExecutableName  *string       `gorm:"type:varchar(255)" json:"executable_name,omitempty"`
	IconURL         *string       `gorm:"type:varchar(512)" json:"icon_url,omitempty"`
	PlaytimeMinutes int64         `gorm:"not null" json:"playtime_minutes"`
	IsShared        bool          `gorm:"not null" json:"is_shared"`
	Description     string        `gorm:"type:text" json:"description,omitempty"`
	ReleaseDate     string        `gorm:"type:varchar(64)" json:"release_date,omitempty"`
	Developers      []string      `gorm:"type:text;serializer:json" json:"developers,omitempty"`
	Publishers      []string      `gorm:"type:text;serializer:json" json:"publishers,omitempty"`
	HeaderImage     *string       `gorm:"type:varchar(512)" json:"header_image,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Sessions        []PlaySession `gorm:"foreignKey:GameID" json:"sessions,omitempty"`
}

func (Game) TableName() string {
	return "games"
}

// BeforeCreate assigns a fresh id. On an upsert conflict the stored id wins.
func (g *Game) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// PlaySession records play time for a Game. For SourceSteamAPI there is one aggregate row
// per game whose duration tracks the lifetime playtime.
type PlaySession struct {
	ID              string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	GameID          string        `gorm:"type:varchar(36);not null;index" json:"game_id"`
	UserID          string        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	StartedAt       time.Time     `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time    `json:"ended_at,omitempty"`
	DurationSeconds int64         `gorm:"not null" json:"duration_seconds"`
	Source          SessionSource `gorm:"type:varchar(32);not null;index" json:"source"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (PlaySession) TableName() string {
	return "play_sessions"
}

func (s *PlaySession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// All lists the models managed by migrations.
func All() []any {
	return []any{&Game{}, &PlaySession{}}
}
