package repositories

import (
	"context"

	"github.com/dwelli/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedListingRepository defines the bookmark relation operations
type SavedListingRepository interface {
	// Toggle flips the (user, listing) pair and reports whether it is now present.
	// An unknown user or listing yields ErrNotFound and leaves the relation untouched.
	Toggle(ctx context.Context, userID, listingID uint) (bool, error)
	IsSaved(ctx context.Context, userID, listingID uint) (bool, error)
	GetSavedListings(ctx context.Context, userID uint) ([]models.Listing, error)
}

// PostgresSavedListingRepository implements SavedListingRepository
type PostgresSavedListingRepository struct {
	db *gorm.DB
}

func NewPostgresSavedListingRepository(db *gorm.DB) *PostgresSavedListingRepository {
	return &PostgresSavedListingRepository{db: db}
}

// Toggle runs the check-then-act in one transaction holding the user row lock,
// so concurrent toggles for the same user are applied one after another.
func (r *PostgresSavedListingRepository) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	var saved bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, userID).Error; err != nil {
			return err
		}

		var listingCount int64
		if err := tx.Model(&models.Listing{}).Where("id = ?", listingID).Count(&listingCount).Error; err != nil {
			return err
		}
		if listingCount == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.SavedListing{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}

		pair := &models.SavedListing{UserID: userID, ListingID: listingID}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(pair).Error; err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return saved, nil
}

func (r *PostgresSavedListingRepository) IsSaved(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedListing{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

// GetSavedListings returns the user's bookmarked listings, newest listing first
func (r *PostgresSavedListingRepository) GetSavedListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_listings ON saved_listings.listing_id = listings.id").
		Where("saved_listings.user_id = ?", userID).
		Order("listings.created_at DESC").
		Order("listings.id DESC").
		Find(&listings).Error
	return listings, err
}
