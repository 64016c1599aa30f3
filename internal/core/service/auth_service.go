package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	games     ports.GameRepository
	jwtSecret string
	tokenTTL  time.Duration
	// defaultTurns pre-seeds the ledger of new accounts for every active game.
	defaultTurns int
	logger       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, games ports.GameRepository, jwtSecret string, tokenTTL time.Duration, defaultTurns int, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:        users,
		games:        games,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		defaultTurns: defaultTurns,
		logger:       logger,
	}
}

// Register opens a new account. Usernames are 3-30 chars of [a-zA-Z0-9_]
// and unique case-insensitively; phone numbers are 10 digits and unique.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if !usernameRe.MatchString(input.Username) || !phoneRe.MatchString(input.PhoneNumber) || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: %w", err)
	}
	if _, err := s.users.FindByPhone(ctx, input.PhoneNumber); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Role:         domain.RoleUser,
		Privacy:      domain.PrivacyPublic,
		DisplayName:  input.Username,
		AvatarURL:    domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if s.defaultTurns > 0 {
		s.seedLedger(ctx, user)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user", created.ID).Str("username", created.Username).Msg("account registered")
	return token, created, nil
}

// Login verifies credentials and returns a signed token. Locked accounts
// cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.IsLocked {
		return "", nil, domain.ErrAccountLocked
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// seedLedger gives the new account a starting balance on every active game.
// Failure to read the catalog is not fatal to registration.
func (s *AuthService) seedLedger(ctx context.Context, user *domain.User) {
	games, err := s.games.List(ctx, true)
	if err != nil {
		s.logger.Warn().Err(err).Msg("skipping ledger seed, catalog unavailable")
		return
	}
	for _, g := range games {
		user.AddTurns(g.ID, s.defaultTurns)
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
