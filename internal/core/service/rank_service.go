package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// RankService computes leaderboard positions from the turns ledger, gated by
// the privacy policy.
type RankService struct {
	users  ports.UserRepository
	games  ports.GameRepository
	logger zerolog.Logger
}

func NewRankService(users ports.UserRepository, games ports.GameRepository, logger zerolog.Logger) *RankService {
	return &RankService{users: users, games: games, logger: logger}
}

// Ranks returns the target's position for every game with a non-zero
// balance, sorted by game name. The rank is 1 + the number of users with a
// strictly greater balance, so tied users share a rank and the numbering is
// not dense. Ledger entries whose game has since been deleted are skipped.
func (s *RankService) Ranks(ctx context.Context, viewerID, targetID string) ([]ports.GameRank, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !target.ViewableBy(viewerID) {
		return nil, domain.ErrForbidden
	}

	ranks := make([]ports.GameRank, 0, len(target.PlayTurns))
	for gameID, balance := range target.PlayTurns {
		if balance <= 0 {
			continue
		}

		game, err := s.games.FindByID(ctx, gameID)
		if err != nil {
			if errors.Is(err, domain.ErrGameNotFound) {
				s.logger.Debug().Str("game", gameID).Msg("ledger entry for deleted game skipped")
				continue
			}
			return nil, fmt.Errorf("compute ranks: %w", err)
		}

		higher, err := s.users.CountGreaterBalance(ctx, gameID, balance)
		if err != nil {
			return nil, fmt.Errorf("compute ranks: %w", err)
		}

		ranks = append(ranks, ports.GameRank{
			GameID:   game.ID,
			GameName: game.Name,
			Balance:  balance,
			Rank:     higher + 1,
		})
	}

	sort.Slice(ranks, func(i, j int) bool { return ranks[i].GameName < ranks[j].GameName })
	return ranks, nil
}
