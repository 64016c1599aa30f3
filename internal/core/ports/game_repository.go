package ports

import (
	"context"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// GameRepository defines persistence operations for the game catalog.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	FindByName(ctx context.Context, name string) (*domain.Game, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) error
	Delete(ctx context.Context, id string) error
	// Search matches game names case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]*domain.Game, error)
}
