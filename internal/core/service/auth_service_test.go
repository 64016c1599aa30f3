package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthService(users *stubUserRepo, games *stubGameRepo, defaultTurns int) *AuthService {
	return NewAuthService(users, games, testSecret, time.Hour, defaultTurns, discardLogger)
}

func TestAuthService_Register(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubGameRepo(), 0)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:    "alice_99",
		Password:    "hunter22",
		PhoneNumber: "5551234567",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if user.Role != domain.RoleUser || user.Privacy != domain.PrivacyPublic {
		t.Errorf("defaults not applied: role=%q privacy=%q", user.Role, user.Privacy)
	}
	if user.DisplayName != "alice_99" {
		t.Errorf("display name = %q, want username", user.DisplayName)
	}
	if user.AvatarURL != domain.DefaultAvatarURL {
		t.Errorf("avatar = %q", user.AvatarURL)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	claims := parseClaims(t, token)
	if claims["sub"] != user.ID || claims["username"] != "alice_99" || claims["role"] != domain.RoleUser {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubGameRepo(), 0)

	cases := []struct {
		name  string
		input ports.RegisterInput
	}{
		{"short username", ports.RegisterInput{Username: "ab", Password: "pw", PhoneNumber: "5551234567"}},
		{"username with spaces", ports.RegisterInput{Username: "a b c", Password: "pw", PhoneNumber: "5551234567"}},
		{"username with symbols", ports.RegisterInput{Username: "alice!", Password: "pw", PhoneNumber: "5551234567"}},
		{"short phone", ports.RegisterInput{Username: "alice", Password: "pw", PhoneNumber: "555123"}},
		{"alpha phone", ports.RegisterInput{Username: "alice", Password: "pw", PhoneNumber: "55512345ab"}},
		{"empty password", ports.RegisterInput{Username: "alice", Password: "", PhoneNumber: "5551234567"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(context.Background(), tc.input); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubGameRepo(), 0)

	first := ports.RegisterInput{Username: "alice", Password: "pw", PhoneNumber: "5551234567"}
	if _, _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// usernames are unique case-insensitively
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "ALICE", Password: "pw", PhoneNumber: "5559999999"}); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("duplicate username: got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw", PhoneNumber: "5551234567"}); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("duplicate phone: got %v", err)
	}
}

func TestAuthService_Register_SeedsLedger(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	g1 := games.seed("Snake")
	g2 := games.seed("Tetris")
	inactive := games.seed("Retired")
	games.games[inactive.ID].IsActive = false

	svc := newAuthService(users, games, 5)
	_, user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw", PhoneNumber: "5551234567"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if user.Balance(g1.ID) != 5 || user.Balance(g2.ID) != 5 {
		t.Errorf("ledger not seeded: %v", user.PlayTurns)
	}
	if user.Balance(inactive.ID) != 0 {
		t.Error("inactive game seeded")
	}
}

func TestAuthService_Register_CatalogFailureIsNotFatal(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	games.listErr = errors.New("catalog down")

	svc := newAuthService(users, games, 5)
	_, user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw", PhoneNumber: "5551234567"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(user.PlayTurns) != 0 {
		t.Errorf("ledger seeded despite catalog failure: %v", user.PlayTurns)
	}
}

func TestAuthService_Login(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubGameRepo(), 0)

	_, created, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "hunter22", PhoneNumber: "5551234567"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("wrong account: %q", user.ID)
	}
	claims := parseClaims(t, token)
	if claims["sub"] != created.ID {
		t.Errorf("unexpected sub claim: %v", claims["sub"])
	}

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("bad password: got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestAuthService_Login_LockedAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubGameRepo(), 0)

	_, created, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "hunter22", PhoneNumber: "5551234567"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	users.users[created.ID].IsLocked = true

	if _, _, err := svc.Login(context.Background(), "alice", "hunter22"); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	return parsed.Claims.(jwt.MapClaims)
}
