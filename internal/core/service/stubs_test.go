package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stickpark/game-portal/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // by ID
	nextID  int
	pairErr error // if set, UpdatePair returns this error without applying
	findErr error // if set, FindByID returns this error

	// pairConflict, when set, runs once before the next UpdatePair reads its
	// documents. It stands in for a concurrent writer committing first: the
	// mutate callback then sees the state that writer left behind, the way a
	// retried transaction re-reads after a write conflict.
	pairConflict func()
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.PlayTurns != nil {
		clone.PlayTurns = make(map[string]int, len(u.PlayTurns))
		for k, v := range u.PlayTurns {
			clone.PlayTurns[k] = v
		}
	}
	clone.Friends = append([]string(nil), u.Friends...)
	clone.RequestsSent = append([]string(nil), u.RequestsSent...)
	clone.RequestsReceived = append([]string(nil), u.RequestsReceived...)
	return &clone
}

func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) || existing.PhoneNumber == user.PhoneNumber {
			return nil, domain.ErrUserExists
		}
	}
	return r.seed(cloneUser(user)), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := cloneUser(u)
	if err := mutate(clone); err != nil {
		return nil, err
	}
	r.users[id] = cloneUser(clone)
	return clone, nil
}

// UpdatePair mirrors the transactional contract: mutate runs against fresh
// copies of both documents and either both writes land or neither does.
func (r *stubUserRepo) UpdatePair(_ context.Context, aID, bID string, mutate func(a, b *domain.User) error) error {
	if r.pairErr != nil {
		return r.pairErr
	}
	if hook := r.pairConflict; hook != nil {
		r.pairConflict = nil
		hook()
	}

	a, ok := r.users[aID]
	if !ok {
		return domain.ErrUserNotFound
	}
	b, ok := r.users[bID]
	if !ok {
		return domain.ErrUserNotFound
	}

	ac, bc := cloneUser(a), cloneUser(b)
	if err := mutate(ac, bc); err != nil {
		return err
	}
	r.users[aID] = ac
	r.users[bID] = bc
	return nil
}

func (r *stubUserRepo) IncrementBalance(_ context.Context, id, gameID string, delta int) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.AddTurns(gameID, delta)
	return u.Balance(gameID), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for _, u := range r.users {
		u.RemoveFriend(id)
		u.RemoveSentRequest(id)
		u.RemoveReceivedRequest(id)
	}
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountGreaterBalance(_ context.Context, gameID string, balance int) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Balance(gameID) > balance {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	var all []*domain.User
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	total := int64(len(all))
	skip := (page - 1) * limit
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *stubUserRepo) Search(_ context.Context, query string, limit int) ([]*domain.User, error) {
	q := strings.ToLower(query)
	var out []*domain.User
	for _, u := range r.users {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory stub game repository
// ---------------------------------------------------------------------------

type stubGameRepo struct {
	games   map[string]*domain.Game
	nextID  int
	listErr error
}

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[string]*domain.Game)}
}

func (r *stubGameRepo) seed(name string) *domain.Game {
	r.nextID++
	g := &domain.Game{
		ID:        fmt.Sprintf("g%d", r.nextID),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	r.games[g.ID] = g
	clone := *g
	return &clone
}

func (r *stubGameRepo) Create(_ context.Context, game *domain.Game) (*domain.Game, error) {
	for _, g := range r.games {
		if g.Name == game.Name {
			return nil, domain.ErrGameExists
		}
	}
	r.nextID++
	clone := *game
	clone.ID = fmt.Sprintf("g%d", r.nextID)
	r.games[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGameRepo) FindByID(_ context.Context, id string) (*domain.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGameRepo) FindByName(_ context.Context, name string) (*domain.Game, error) {
	for _, g := range r.games {
		if g.Name == name {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (r *stubGameRepo) List(_ context.Context, activeOnly bool) ([]*domain.Game, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Game
	for _, g := range r.games {
		if activeOnly && !g.IsActive {
			continue
		}
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubGameRepo) Update(_ context.Context, game *domain.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return domain.ErrGameNotFound
	}
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *stubGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *stubGameRepo) Search(_ context.Context, query string, limit int) ([]*domain.Game, error) {
	q := strings.ToLower(query)
	var out []*domain.Game
	for _, g := range r.games {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(g.Name), q) {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory stub OTP store
// ---------------------------------------------------------------------------

type stubOTPStore struct {
	codes map[string]string
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{codes: make(map[string]string)}
}

func (s *stubOTPStore) Set(_ context.Context, userID, code string, _ time.Duration) error {
	s.codes[userID] = code
	return nil
}

func (s *stubOTPStore) Get(_ context.Context, userID string) (string, error) {
	return s.codes[userID], nil
}

func (s *stubOTPStore) Delete(_ context.Context, userID string) error {
	delete(s.codes, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mkUser(repo *stubUserRepo, username string) *domain.User {
	return repo.seed(&domain.User{
		Username:    username,
		DisplayName: username,
		PhoneNumber: fmt.Sprintf("%010d", repo.nextID+1),
		Role:        domain.RoleUser,
		Privacy:     domain.PrivacyPublic,
	})
}

func mkFriends(repo *stubUserRepo, a, b *domain.User) {
	ua := repo.users[a.ID]
	ub := repo.users[b.ID]
	ua.AddFriend(b.ID)
	ub.AddFriend(a.ID)
	a.AddFriend(b.ID)
	b.AddFriend(a.ID)
}
