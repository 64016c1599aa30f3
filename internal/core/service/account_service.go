package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

const (
	maxBioLength = 200
	otpTTL       = 10 * time.Minute
)

// OTPStore abstracts the one-time-code store (Redis). Codes expire on their
// own; Delete clears a code after successful verification.
type OTPStore interface {
	Set(ctx context.Context, userID, code string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// AccountService implements profile management, phone verification,
// privacy-gated profile views, and admin account operations.
type AccountService struct {
	users  ports.UserRepository
	otp    OTPStore
	logger zerolog.Logger
	// now is swappable in tests to pin the display-name cooldown clock.
	now func() time.Time
}

func NewAccountService(users ports.UserRepository, otp OTPStore, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, otp: otp, logger: logger, now: time.Now}
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the given profile changes. A display-name change is
// allowed at most once per rolling 30-day window; bio is capped at 200
// characters; privacy must be one of the known values.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	now := s.now().UTC()

	return s.users.Update(ctx, userID, func(user *domain.User) error {
		if input.DisplayName != nil && *input.DisplayName != user.DisplayName {
			if !user.CanChangeDisplayName(now) {
				return domain.ErrDisplayNameLocked
			}
			user.DisplayName = *input.DisplayName
			user.LastInfoChange = now
		}
		if input.Bio != nil {
			if len(*input.Bio) > maxBioLength {
				return fmt.Errorf("%w: bio exceeds %d characters", domain.ErrInvalidInput, maxBioLength)
			}
			user.Bio = *input.Bio
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}
		if input.Privacy != nil {
			if *input.Privacy != domain.PrivacyPublic && *input.Privacy != domain.PrivacyFriends {
				return fmt.Errorf("%w: unknown privacy setting", domain.ErrInvalidInput)
			}
			user.Privacy = *input.Privacy
		}

		user.UpdatedAt = now
		return nil
	})
}

// SendVerificationCode issues a 6-digit one-time code for the user's phone
// number. Actual SMS delivery is out of scope; the code is logged instead.
func (s *AccountService) SendVerificationCode(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.otp.Set(ctx, user.ID, code, otpTTL); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	s.logger.Info().Str("user", user.ID).Str("phone", user.PhoneNumber).Str("code", code).Msg("verification code issued")
	return nil
}

// VerifyPhone checks the one-time code and marks the phone verified. The
// code is consumed on success.
func (s *AccountService) VerifyPhone(ctx context.Context, userID, code string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	stored, err := s.otp.Get(ctx, user.ID)
	if err != nil || stored == "" || stored != code {
		return domain.ErrInvalidOTP
	}

	if _, err := s.users.Update(ctx, user.ID, func(u *domain.User) error {
		u.IsPhoneVerified = true
		u.UpdatedAt = s.now().UTC()
		return nil
	}); err != nil {
		return fmt.Errorf("verify phone: %w", err)
	}

	if err := s.otp.Delete(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user", user.ID).Msg("failed to clear verification code")
	}
	return nil
}

// ViewProfile returns what viewer may see of target. The friend status is
// always included so the caller can render the right friend-action button;
// the ledger and friend count are withheld when the privacy gate is closed.
func (s *AccountService) ViewProfile(ctx context.Context, viewerID, targetID string) (*ports.ProfileView, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	view := &ports.ProfileView{
		ID:           target.ID,
		Username:     target.Username,
		DisplayName:  target.DisplayName,
		Bio:          target.Bio,
		AvatarURL:    target.AvatarURL,
		Privacy:      target.Privacy,
		JoinedAt:     target.CreatedAt,
		FriendStatus: target.FriendStatusFor(viewerID),
	}

	if target.ViewableBy(viewerID) {
		view.Full = true
		view.PlayTurns = target.PlayTurns
		view.FriendCount = len(target.Friends)
	}
	return view, nil
}

// ListUsers returns a page of accounts for the admin console.
func (s *AccountService) ListUsers(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListUsersResult{Items: items, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

// SetRole changes a user's role. Demoting the sole remaining admin is
// refused so the system always keeps at least one admin.
func (s *AccountService) SetRole(ctx context.Context, targetID, role string) (*domain.User, error) {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, fmt.Errorf("%w: unknown role", domain.ErrInvalidInput)
	}

	target, err := s.users.Update(ctx, targetID, func(target *domain.User) error {
		if target.Role == role {
			return nil
		}
		if target.Role == domain.RoleAdmin {
			if err := s.guardLastAdmin(ctx); err != nil {
				return err
			}
		}
		target.Role = role
		target.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user", targetID).Str("role", role).Msg("role changed")
	return target, nil
}

// SetLocked flips the account lock flag.
func (s *AccountService) SetLocked(ctx context.Context, targetID string, locked bool) (*domain.User, error) {
	target, err := s.users.Update(ctx, targetID, func(target *domain.User) error {
		target.IsLocked = locked
		target.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user", targetID).Bool("locked", locked).Msg("lock flag changed")
	return target, nil
}

// DeleteUser removes the account and scrubs it from every other user's
// social sets. Deleting the sole remaining admin is refused.
func (s *AccountService) DeleteUser(ctx context.Context, targetID string) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.Role == domain.RoleAdmin {
		if err := s.guardLastAdmin(ctx); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user", targetID).Msg("account deleted")
	return nil
}

func (s *AccountService) guardLastAdmin(ctx context.Context) error {
	admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}

// generateOTP returns a random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
