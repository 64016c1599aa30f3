package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// SocialService implements the friendship graph over the user store.
//
// Every mutation runs inside UpdatePair's transactional callback: the checks
// see the documents as they stand at commit time, so a send that races a
// concurrent accept or duplicate is re-validated against fresh state rather
// than clobbering it.
type SocialService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewSocialService(users ports.UserRepository, logger zerolog.Logger) *SocialService {
	return &SocialService{users: users, logger: logger}
}

// SendRequest creates a pending request from actor to target.
//
// A request is refused when the two users are already friends or when a
// request already exists in either direction: if the target sent one first,
// the correct move is to accept it, not to pile a second edge on top.
func (s *SocialService) SendRequest(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrSelfReference
	}

	err := s.users.UpdatePair(ctx, actorID, targetID, func(actor, target *domain.User) error {
		if actor.IsFriend(targetID) || actor.HasSentRequestTo(targetID) || actor.HasRequestFrom(targetID) {
			return domain.ErrAlreadyConnected
		}
		actor.AddSentRequest(targetID)
		target.AddReceivedRequest(actorID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("from", actorID).Str("to", targetID).Msg("friend request sent")
	return nil
}

// AcceptRequest turns a pending request from sender into a friendship.
func (s *SocialService) AcceptRequest(ctx context.Context, actorID, senderID string) error {
	err := s.users.UpdatePair(ctx, actorID, senderID, func(actor, sender *domain.User) error {
		if !actor.RemoveReceivedRequest(senderID) {
			return domain.ErrRequestNotFound
		}
		sender.RemoveSentRequest(actorID)

		actor.AddFriend(senderID)
		sender.AddFriend(actorID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user", actorID).Str("friend", senderID).Msg("friend request accepted")
	return nil
}

// RejectRequest discards a pending request from sender without creating a
// friendship. Rejecting a request that does not exist fails with
// ErrRequestNotFound and mutates nothing.
func (s *SocialService) RejectRequest(ctx context.Context, actorID, senderID string) error {
	return s.users.UpdatePair(ctx, actorID, senderID, func(actor, sender *domain.User) error {
		if !actor.RemoveReceivedRequest(senderID) {
			return domain.ErrRequestNotFound
		}
		sender.RemoveSentRequest(actorID)
		return nil
	})
}

// CancelRequest withdraws a pending request the actor sent to target.
func (s *SocialService) CancelRequest(ctx context.Context, actorID, targetID string) error {
	return s.users.UpdatePair(ctx, actorID, targetID, func(actor, target *domain.User) error {
		if !actor.RemoveSentRequest(targetID) {
			return domain.ErrRequestNotFound
		}
		target.RemoveReceivedRequest(actorID)
		return nil
	})
}

// RemoveFriend dissolves an existing friendship on both sides.
func (s *SocialService) RemoveFriend(ctx context.Context, actorID, friendID string) error {
	err := s.users.UpdatePair(ctx, actorID, friendID, func(actor, friend *domain.User) error {
		if !actor.RemoveFriend(friendID) {
			return domain.ErrUserNotFound
		}
		friend.RemoveFriend(actorID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user", actorID).Str("friend", friendID).Msg("friendship removed")
	return nil
}

// ListFriends resolves the actor's friends set to user records. Dangling
// references (deleted accounts) are skipped.
func (s *SocialService) ListFriends(ctx context.Context, userID string) ([]*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Friends)
}

// ListRequests resolves both pending-request sets of the actor.
func (s *SocialService) ListRequests(ctx context.Context, userID string) (*ports.FriendLists, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sent, err := s.resolve(ctx, user.RequestsSent)
	if err != nil {
		return nil, err
	}
	received, err := s.resolve(ctx, user.RequestsReceived)
	if err != nil {
		return nil, err
	}
	return &ports.FriendLists{Sent: sent, Received: received}, nil
}

func (s *SocialService) resolve(ctx context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
