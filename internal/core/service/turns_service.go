package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// TurnsService implements the play-turns ledger: admin grants and
// peer-to-peer gifts between friends.
type TurnsService struct {
	users  ports.UserRepository
	games  ports.GameRepository
	logger zerolog.Logger
}

func NewTurnsService(users ports.UserRepository, games ports.GameRepository, logger zerolog.Logger) *TurnsService {
	return &TurnsService{users: users, games: games, logger: logger}
}

// Grant adds amount turns to the user's balance for gameID and returns the
// new balance. The write is a single field-targeted increment, so it can
// never lose a concurrent write to the same document. Role enforcement
// happens at the route level.
func (s *TurnsService) Grant(ctx context.Context, userID, gameID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	if _, err := s.games.FindByID(ctx, gameID); err != nil {
		return 0, err
	}

	balance, err := s.users.IncrementBalance(ctx, userID, gameID, amount)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("user", userID).Str("game", gameID).Int("amount", amount).Msg("turns granted")
	return balance, nil
}

// Transfer gifts amount turns from sender to a friend. The friendship and
// balance checks run inside the transactional callback against the
// documents as they stand at commit time, so a transfer racing another
// spend of the same balance is re-validated rather than double-spent; the
// debit and credit land as one atomic pair and a transfer that would drive
// the sender's balance negative is rejected whole. Transfers are
// deliberately not idempotent: repeating the same transfer moves turns
// again.
func (s *TurnsService) Transfer(ctx context.Context, senderID, recipientID, gameID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if senderID == recipientID {
		return 0, domain.ErrSelfReference
	}

	var balance int
	err := s.users.UpdatePair(ctx, senderID, recipientID, func(sender, recipient *domain.User) error {
		if !sender.IsFriend(recipientID) {
			return domain.ErrNotFriends
		}
		if sender.Balance(gameID) < amount {
			return domain.ErrInsufficientBalance
		}

		sender.AddTurns(gameID, -amount)
		recipient.AddTurns(gameID, amount)
		balance = sender.Balance(gameID)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("from", senderID).
		Str("to", recipientID).
		Str("game", gameID).
		Int("amount", amount).
		Msg("turns transferred")

	return balance, nil
}

// Balances returns the caller's full ledger.
func (s *TurnsService) Balances(ctx context.Context, userID string) (map[string]int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PlayTurns == nil {
		return map[string]int{}, nil
	}
	return user.PlayTurns, nil
}
