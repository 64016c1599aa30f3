package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

const searchLimit = 20

// SearchService looks up users and games by name. Only public user fields
// are ever returned, so results need no privacy gating.
type SearchService struct {
	users ports.UserRepository
	games ports.GameRepository
}

func NewSearchService(users ports.UserRepository, games ports.GameRepository) *SearchService {
	return &SearchService{users: users, games: games}
}

// Search matches the query against usernames, display names, and game
// names, case-insensitively. Queries shorter than two characters are
// rejected.
func (s *SearchService) Search(ctx context.Context, query string) (*ports.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, fmt.Errorf("%w: query must be at least 2 characters", domain.ErrInvalidInput)
	}

	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	games, err := s.games.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}

	result := &ports.SearchResult{
		Users: make([]ports.UserHit, 0, len(users)),
		Games: make([]ports.GameHit, 0, len(games)),
	}
	for _, u := range users {
		result.Users = append(result.Users, ports.UserHit{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
		})
	}
	for _, g := range games {
		result.Games = append(result.Games, ports.GameHit{
			ID:           g.ID,
			Name:         g.Name,
			Description:  g.Description,
			ThumbnailURL: g.ThumbnailURL,
		})
	}
	return result, nil
}
