package repositories

import (
	"context"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"gorm.io/gorm"
)

// ListingRepository defines the read side of listings plus seeding
type ListingRepository interface {
	FindListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	GetListingByID(ctx context.Context, id uint) (*models.Listing, error)
	CreateListing(ctx context.Context, listing *models.Listing) error
}

// PostgresListingRepository implements ListingRepository for PostgreSQL
type PostgresListingRepository struct {
	db *gorm.DB
}

func NewPostgresListingRepository(db *gorm.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

// FindListings returns every listing matching the filter, newest first
func (r *PostgresListingRepository) FindListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := r.db.WithContext(ctx).
		Scopes(ListingFilterScope(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&listings).Error
	return listings, err
}

func (r *PostgresListingRepository) GetListingByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (r *PostgresListingRepository) CreateListing(ctx context.Context, listing *models.Listing) error {
	return translate(r.db.WithContext(ctx).Create(listing).Error)
}

// ListingFilterScope turns a ListingFilter into WHERE conditions. Every supplied
// dimension is ANDed; the text term matches title OR address.
func ListingFilterScope(f models.ListingFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.SearchTerm != "" {
			pattern := "%" + escapeLike(strings.ToLower(f.SearchTerm)) + "%"
			tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(address) LIKE ?)", pattern, pattern)
		}
		if f.Type != nil {
			tx = tx.Where("type = ?", string(*f.Type))
		}
		if f.MaxPrice != nil {
			tx = tx.Where("price <= ?", *f.MaxPrice)
		}
		if f.MinBedrooms > 0 {
			tx = tx.Where("bedrooms >= ?", f.MinBedrooms)
		}
		return tx
	}
}

// escapeLike makes % and _ in user input match literally (Postgres uses \ as the LIKE escape)
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
