package ports

import (
	"context"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// CreateGameInput carries the fields for a new catalog entry.
type CreateGameInput struct {
	Name         string
	Description  string
	GameURL      string
	ThumbnailURL string
	Category     string
}

// UpdateGameInput carries mutable catalog fields; nil pointers are ignored.
type UpdateGameInput struct {
	Name         *string
	Description  *string
	GameURL      *string
	ThumbnailURL *string
	Category     *string
	IsActive     *bool
}

// GameService manages the game catalog.
type GameService interface {
	Create(ctx context.Context, input CreateGameInput) (*domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	List(ctx context.Context) ([]*domain.Game, error)
	Update(ctx context.Context, id string, input UpdateGameInput) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

// UserHit is the public subset returned for users in search results.
type UserHit struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// GameHit is the subset returned for games in search results.
type GameHit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SearchResult groups user and game matches for one query.
type SearchResult struct {
	Users []UserHit `json:"users"`
	Games []GameHit `json:"games"`
}

// SearchService looks up users and games by name.
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}
