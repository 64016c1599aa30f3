package ports

import "context"

// GameRank is a user's leaderboard position for one game.
type GameRank struct {
	GameID   string `json:"game_id"`
	GameName string `json:"game_name"`
	Balance  int    `json:"balance"`
	Rank     int64  `json:"rank"`
}

// RankService computes leaderboard positions from the turns ledger.
type RankService interface {
	// Ranks returns the target's rank for every game with a non-zero
	// balance. The viewer must pass the privacy gate or ErrForbidden is
	// returned. Games deleted since the ledger entry was written are
	// silently skipped.
	Ranks(ctx context.Context, viewerID, targetID string) ([]GameRank, error)
}
