package ports

import (
	"context"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// UserRepository defines persistence operations for user documents.
//
// Update and UpdatePair run the mutate callback against documents read
// inside the write's own transaction. When a concurrent writer lands between
// that read and the commit, the attempt is retried against fresh documents,
// so a validation the callback performs (a balance check, a duplicate-edge
// check) always holds at commit time and no concurrent update is lost.
// Delete spans multiple documents and is applied transactionally too.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername matches case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	// Update applies mutate to the stored document and persists the result,
	// returning the updated user. A non-nil error from mutate aborts the
	// write and is returned as-is.
	Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error)
	// UpdatePair applies mutate to both stored documents and persists both
	// atomically (both writes or neither).
	UpdatePair(ctx context.Context, aID, bID string, mutate func(a, b *domain.User) error) error
	// IncrementBalance adjusts the user's turn balance for gameID by delta
	// as a single field-targeted write, returning the new balance.
	IncrementBalance(ctx context.Context, id, gameID string, delta int) (int, error)
	// Delete removes the user and pulls their ID out of every other user's
	// social sets, atomically.
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
	// CountGreaterBalance counts users whose balance for gameID strictly
	// exceeds balance.
	CountGreaterBalance(ctx context.Context, gameID string, balance int) (int64, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	// Search matches username or display name case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
}
