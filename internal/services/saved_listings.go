package services

import (
	"context"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
)

// SavedListingService owns the bookmark toggle
type SavedListingService struct {
	repo  repositories.SavedListingRepository
	locks *pairLocks
}

// NewSavedListingService creates a new SavedListingService
func NewSavedListingService(repo repositories.SavedListingRepository) *SavedListingService {
	return &SavedListingService{repo: repo, locks: newPairLocks()}
}

// Toggle flips the bookmark and reports whether the listing is now saved.
// Calls for the same pair are serialized in-process; the repository serializes across processes.
func (s *SavedListingService) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	unlock := s.locks.lock(pairKey{userID: userID, listingID: listingID})
	defer unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.repo.Toggle(ctx, userID, listingID)
}

// IsSaved reports whether the user has bookmarked the listing. It waits for an in-flight toggle of the same pair.
func (s *SavedListingService) IsSaved(ctx context.Context, userID, listingID uint) (bool, error) {
	unlock := s.locks.lock(pairKey{userID: userID, listingID: listingID})
	defer unlock()
	return s.repo.IsSaved(ctx, userID, listingID)
}

// SavedListings returns the user's bookmarked listings
func (s *SavedListingService) SavedListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.repo.GetSavedListings(ctx, userID)
}
