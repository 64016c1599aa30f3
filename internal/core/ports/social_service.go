package ports

import (
	"context"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// FriendLists groups the pending requests of a user in both directions.
type FriendLists struct {
	Sent     []*domain.User
	Received []*domain.User
}

// SocialService maintains the friendship graph: pending requests and the
// symmetric friends relation. Every mutation touches exactly two user
// records and is applied atomically.
type SocialService interface {
	// SendRequest creates a pending request from actor to target.
	SendRequest(ctx context.Context, actorID, targetID string) error
	// AcceptRequest turns a pending request from sender into a friendship.
	AcceptRequest(ctx context.Context, actorID, senderID string) error
	// RejectRequest discards a pending request from sender.
	RejectRequest(ctx context.Context, actorID, senderID string) error
	// CancelRequest withdraws a pending request the actor sent to target.
	CancelRequest(ctx context.Context, actorID, targetID string) error
	// RemoveFriend dissolves an existing friendship on both sides.
	RemoveFriend(ctx context.Context, actorID, friendID string) error

	ListFriends(ctx context.Context, userID string) ([]*domain.User, error)
	ListRequests(ctx context.Context, userID string) (*FriendLists, error)
}
