package ports

import "context"

// TurnsService manages the per-user, per-game play-turns ledger.
type TurnsService interface {
	// Grant adds amount turns to the user's balance for gameID and returns
	// the new balance. Admin-only; the caller enforces the role.
	Grant(ctx context.Context, userID, gameID string, amount int) (int, error)
	// Transfer moves amount turns from sender to a friend. Debit and credit
	// are applied atomically; the sender's new balance is returned.
	Transfer(ctx context.Context, senderID, recipientID, gameID string, amount int) (int, error)
	// Balances returns the caller's full ledger.
	Balances(ctx context.Context, userID string) (map[string]int, error)
}
