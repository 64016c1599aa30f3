package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

const defaultCategory = "Action"

// GameService manages the game catalog.
type GameService struct {
	games  ports.GameRepository
	logger zerolog.Logger
}

func NewGameService(games ports.GameRepository, logger zerolog.Logger) *GameService {
	return &GameService{games: games, logger: logger}
}

// Create adds a catalog entry. Game names are unique.
func (s *GameService) Create(ctx context.Context, input ports.CreateGameInput) (*domain.Game, error) {
	if input.Name == "" || input.Description == "" || input.GameURL == "" || input.ThumbnailURL == "" {
		return nil, fmt.Errorf("%w: name, description, game_url and thumbnail_url are required", domain.ErrInvalidInput)
	}

	if _, err := s.games.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrGameExists
	} else if !errors.Is(err, domain.ErrGameNotFound) {
		return nil, fmt.Errorf("create game: %w", err)
	}

	category := input.Category
	if category == "" {
		category = defaultCategory
	}

	now := time.Now().UTC()
	game := &domain.Game{
		Name:         input.Name,
		Description:  input.Description,
		GameURL:      input.GameURL,
		ThumbnailURL: input.ThumbnailURL,
		Category:     category,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.games.Create(ctx, game)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("game", created.ID).Str("name", created.Name).Msg("game created")
	return created, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.games.FindByID(ctx, id)
}

func (s *GameService) List(ctx context.Context) ([]*domain.Game, error) {
	return s.games.List(ctx, false)
}

// Update applies partial changes to a catalog entry. Renames keep the
// uniqueness guarantee.
func (s *GameService) Update(ctx context.Context, id string, input ports.UpdateGameInput) (*domain.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != game.Name {
		if _, err := s.games.FindByName(ctx, *input.Name); err == nil {
			return nil, domain.ErrGameExists
		} else if !errors.Is(err, domain.ErrGameNotFound) {
			return nil, fmt.Errorf("update game: %w", err)
		}
		game.Name = *input.Name
	}
	if input.Description != nil {
		game.Description = *input.Description
	}
	if input.GameURL != nil {
		game.GameURL = *input.GameURL
	}
	if input.ThumbnailURL != nil {
		game.ThumbnailURL = *input.ThumbnailURL
	}
	if input.Category != nil {
		game.Category = *input.Category
	}
	if input.IsActive != nil {
		game.IsActive = *input.IsActive
	}

	game.UpdatedAt = time.Now().UTC()
	if err := s.games.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	return game, nil
}

// Delete removes a catalog entry. Ledger entries referencing it remain and
// are skipped by the rank computation.
func (s *GameService) Delete(ctx context.Context, id string) error {
	if _, err := s.games.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.games.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	s.logger.Info().Str("game", id).Msg("game deleted")
	return nil
}
