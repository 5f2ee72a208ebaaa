package services

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
)

// racyRepo deliberately splits the check from the act so unserialized callers lose updates
type racyRepo struct {
	mu       sync.Mutex
	pairs    map[pairKey]int
	listings map[uint]bool
}

func newRacyRepo(listingIDs ...uint) *racyRepo {
	r := &racyRepo{pairs: make(map[pairKey]int), listings: make(map[uint]bool)}
	for _, id := range listingIDs {
		r.listings[id] = true
	}
	return r
}

func (r *racyRepo) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	if !r.listings[listingID] {
		return false, repositories.ErrNotFound
	}
	k := pairKey{userID, listingID}

	r.mu.Lock()
	present := r.pairs[k] > 0
	r.mu.Unlock()

	runtime.Gosched()

	r.mu.Lock()
	defer r.mu.Unlock()
	if present {
		r.pairs[k]--
		return false, nil
	}
	r.pairs[k]++
	return true, nil
}

func (r *racyRepo) IsSaved(ctx context.Context, userID, listingID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[pairKey{userID, listingID}] > 0, nil
}

func (r *racyRepo) GetSavedListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Listing{}
	for k, n := range r.pairs {
		if k.userID == userID && n > 0 {
			out = append(out, models.Listing{ID: k.listingID})
		}
	}
	return out, nil
}

func (r *racyRepo) rows(userID, listingID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[pairKey{userID, listingID}]
}

func TestToggle_SelfInverse(t *testing.T) {
	repo := newRacyRepo(7)
	svc := NewSavedListingService(repo)
	ctx := context.Background()

	first, err := svc.Toggle(ctx, 1, 7)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	second, err := svc.Toggle(ctx, 1, 7)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}

	if !first || second {
		t.Errorf("expected saved=true then saved=false, got %v then %v", first, second)
	}
	if repo.rows(1, 7) != 0 {
		t.Errorf("two toggles must restore the original state, got %d rows", repo.rows(1, 7))
	}
}

func TestToggle_NotIdempotent(t *testing.T) {
	once := newRacyRepo(7)
	twice := newRacyRepo(7)
	ctx := context.Background()

	NewSavedListingService(once).Toggle(ctx, 1, 7)
	svc := NewSavedListingService(twice)
	svc.Toggle(ctx, 1, 7)
	svc.Toggle(ctx, 1, 7)

	a, _ := once.IsSaved(ctx, 1, 7)
	b, _ := twice.IsSaved(ctx, 1, 7)
	if a == b {
		t.Errorf("one toggle and two toggles must differ, both saved=%v", a)
	}
}

func TestToggle_UnknownListing(t *testing.T) {
	repo := newRacyRepo(7)
	svc := NewSavedListingService(repo)
	ctx := context.Background()
	svc.Toggle(ctx, 1, 7)

	_, err := svc.Toggle(ctx, 1, 99)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	saved, _ := svc.SavedListings(ctx, 1)
	if len(saved) != 1 || saved[0].ID != 7 {
		t.Errorf("relation must be unchanged, got %+v", saved)
	}
}

func TestToggle_ConcurrentSamePair(t *testing.T) {
	for _, n := range []int{2, 7, 32} {
		repo := newRacyRepo(7)
		svc := NewSavedListingService(repo)
		ctx := context.Background()

		var wg sync.WaitGroup
		start := make(chan struct{})
		var mu sync.Mutex
		trues := 0
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				s, err := svc.Toggle(ctx, 1, 7)
				if err != nil {
					t.Errorf("toggle failed: %v", err)
					return
				}
				if s {
					mu.Lock()
					trues++
					mu.Unlock()
				}
			}()
		}
		close(start)
		wg.Wait()

		rows := repo.rows(1, 7)
		if rows != 0 && rows != 1 {
			t.Fatalf("n=%d: relation must be present or absent, got %d rows", n, rows)
		}
		if rows != n%2 {
			t.Errorf("n=%d: expected %d rows after serialized flips, got %d", n, n%2, rows)
		}
		if trues != (n+1)/2 {
			t.Errorf("n=%d: expected %d saved=true responses, got %d", n, (n+1)/2, trues)
		}
		if svc.locks.size() != 0 {
			t.Errorf("n=%d: pair locks leaked: %d", n, svc.locks.size())
		}
	}
}

func TestToggle_DifferentPairsDoNotBlock(t *testing.T) {
	repo := newRacyRepo(1, 2)
	svc := NewSavedListingService(repo)

	unlock := svc.locks.lock(pairKey{userID: 1, listingID: 1})
	defer unlock()

	done := make(chan struct{})
	go func() {
		svc.Toggle(context.Background(), 1, 2)
		close(done)
	}()
	<-done
}

func TestToggle_CancelledContext(t *testing.T) {
	repo := newRacyRepo(7)
	svc := NewSavedListingService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Toggle(ctx, 1, 7); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if repo.rows(1, 7) != 0 {
		t.Error("cancelled toggle must not mutate")
	}
}

func TestIsSaved_FollowsToggles(t *testing.T) {
	svc := NewSavedListingService(newRacyRepo(7))
	ctx := context.Background()

	for i, want := range []bool{true, false, true} {
		if _, err := svc.Toggle(ctx, 1, 7); err != nil {
			t.Fatal(err)
		}
		got, err := svc.IsSaved(ctx, 1, 7)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("after toggle %d: saved=%v, want %v", i+1, got, want)
		}
	}
	if got, _ := svc.IsSaved(ctx, 2, 7); got {
		t.Fatal("another user's bookmark leaked")
	}
	if n := svc.locks.size(); n != 0 {
		t.Fatalf("%d pair locks leaked", n)
	}
}
