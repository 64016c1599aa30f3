package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stickpark/game-portal/internal/core/domain"
)

func TestRankService_StrictlyGreaterCounting(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	g := games.seed("Snake")
	a := mkUser(users, "alice")
	b := mkUser(users, "bob")
	c := mkUser(users, "carol")
	d := mkUser(users, "dave")
	users.users[a.ID].AddTurns(g.ID, 10)
	users.users[b.ID].AddTurns(g.ID, 10)
	users.users[c.ID].AddTurns(g.ID, 25)
	users.users[d.ID].AddTurns(g.ID, 3)

	// ties share a rank and the numbering is not dense:
	// carol=1, alice=bob=2, dave=4
	check := func(id string, want int64) {
		t.Helper()
		ranks, err := svc.Ranks(context.Background(), id, id)
		if err != nil {
			t.Fatalf("ranks failed: %v", err)
		}
		if len(ranks) != 1 {
			t.Fatalf("expected one entry, got %d", len(ranks))
		}
		if ranks[0].Rank != want {
			t.Errorf("rank = %d, want %d", ranks[0].Rank, want)
		}
	}
	check(c.ID, 1)
	check(a.ID, 2)
	check(b.ID, 2)
	check(d.ID, 4)
}

func TestRankService_ZeroBalanceExcluded(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	g1 := games.seed("Snake")
	g2 := games.seed("Tetris")
	a := mkUser(users, "alice")
	users.users[a.ID].AddTurns(g1.ID, 5)
	users.users[a.ID].AddTurns(g2.ID, 5)
	users.users[a.ID].AddTurns(g2.ID, -5) // spent down to zero

	ranks, err := svc.Ranks(context.Background(), a.ID, a.ID)
	if err != nil {
		t.Fatalf("ranks failed: %v", err)
	}
	if len(ranks) != 1 || ranks[0].GameID != g1.ID {
		t.Fatalf("expected only the non-zero game, got %+v", ranks)
	}
}

func TestRankService_DeletedGameSkipped(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	g1 := games.seed("Snake")
	g2 := games.seed("Tetris")
	a := mkUser(users, "alice")
	users.users[a.ID].AddTurns(g1.ID, 5)
	users.users[a.ID].AddTurns(g2.ID, 5)

	if err := games.Delete(context.Background(), g2.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	ranks, err := svc.Ranks(context.Background(), a.ID, a.ID)
	if err != nil {
		t.Fatalf("ranks failed: %v", err)
	}
	if len(ranks) != 1 || ranks[0].GameID != g1.ID {
		t.Fatalf("expected stale ledger entry to be skipped, got %+v", ranks)
	}
}

func TestRankService_SortedByGameName(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	gz := games.seed("Zuma")
	ga := games.seed("Asteroids")
	a := mkUser(users, "alice")
	users.users[a.ID].AddTurns(gz.ID, 5)
	users.users[a.ID].AddTurns(ga.ID, 5)

	ranks, err := svc.Ranks(context.Background(), a.ID, a.ID)
	if err != nil {
		t.Fatalf("ranks failed: %v", err)
	}
	if len(ranks) != 2 || ranks[0].GameName != "Asteroids" || ranks[1].GameName != "Zuma" {
		t.Fatalf("expected name-sorted output, got %+v", ranks)
	}
}

func TestRankService_PrivacyGate(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	g := games.seed("Snake")
	a := mkUser(users, "alice")
	friend := mkUser(users, "bob")
	stranger := mkUser(users, "carol")
	mkFriends(users, a, friend)
	users.users[a.ID].AddTurns(g.ID, 5)
	users.users[a.ID].Privacy = domain.PrivacyFriends

	if _, err := svc.Ranks(context.Background(), stranger.ID, a.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger on friends-only profile: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Ranks(context.Background(), friend.ID, a.ID); err != nil {
		t.Errorf("friend blocked: %v", err)
	}
	if _, err := svc.Ranks(context.Background(), a.ID, a.ID); err != nil {
		t.Errorf("self blocked: %v", err)
	}

	users.users[a.ID].Privacy = domain.PrivacyPublic
	if _, err := svc.Ranks(context.Background(), stranger.ID, a.ID); err != nil {
		t.Errorf("stranger on public profile blocked: %v", err)
	}
}

func TestRankService_TargetMissing(t *testing.T) {
	users := newStubUserRepo()
	games := newStubGameRepo()
	svc := NewRankService(users, games, discardLogger)

	a := mkUser(users, "alice")
	if _, err := svc.Ranks(context.Background(), a.ID, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
