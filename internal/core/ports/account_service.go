package ports

import (
	"context"
	"time"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields. Nil pointers leave
// the corresponding field untouched.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Privacy     *string
}

// ProfileView is what a viewer sees of another user. When Full is false the
// ledger and social sets are withheld and only the public subset is filled.
type ProfileView struct {
	ID           string              `json:"id"`
	Username     string              `json:"username"`
	DisplayName  string              `json:"display_name"`
	Bio          string              `json:"bio"`
	AvatarURL    string              `json:"avatar_url"`
	Privacy      string              `json:"privacy"`
	JoinedAt     time.Time           `json:"joined_at"`
	FriendStatus domain.FriendStatus `json:"friend_status"`
	Full         bool                `json:"-"`

	// Present only when Full.
	PlayTurns   map[string]int `json:"play_turns,omitempty"`
	FriendCount int            `json:"friend_count,omitempty"`
}

// ListUsersResult is a page of accounts for the admin listing.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AccountService covers profile management, phone verification, profile
// views gated by the privacy policy, and admin account operations.
type AccountService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)

	// SendVerificationCode issues a one-time phone verification code.
	SendVerificationCode(ctx context.Context, userID string) error
	// VerifyPhone checks the code and marks the phone verified.
	VerifyPhone(ctx context.Context, userID, code string) error

	// ViewProfile returns the full or truncated view of target depending on
	// the privacy policy. FriendStatus is always populated.
	ViewProfile(ctx context.Context, viewerID, targetID string) (*ProfileView, error)

	// Admin operations.
	ListUsers(ctx context.Context, page, limit int) (*ListUsersResult, error)
	SetRole(ctx context.Context, targetID, role string) (*domain.User, error)
	SetLocked(ctx context.Context, targetID string, locked bool) (*domain.User, error)
	DeleteUser(ctx context.Context, targetID string) error
}
