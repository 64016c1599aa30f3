package domain

import "time"

// Game is a catalog entry users play and accumulate turns on.
type Game struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	GameURL      string    `json:"game_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Category     string    `json:"category"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
