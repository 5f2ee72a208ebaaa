package repositories

import (
	"strings"
	"testing"

	"github.com/dwelli/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds a gorm handle that renders SQL without ever connecting
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dwelli dbname=dwelli sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true, DryRun: true})
	if err != nil {
		t.Fatalf("Failed to open dry-run db: %v", err)
	}
	return db
}

func renderFilter(db *gorm.DB, f models.ListingFilter) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Listing
		return tx.Model(&models.Listing{}).Scopes(ListingFilterScope(f)).Order("created_at DESC").Find(&out)
	})
}

func TestListingFilterScope_AllDimensions(t *testing.T) {
	db := dryRunDB(t)
	apt := models.PropertyApartment
	maxPrice := 3000

	sql := renderFilter(db, models.ListingFilter{
		SearchTerm:  "Quay",
		Type:        &apt,
		MaxPrice:    &maxPrice,
		MinBedrooms: 2,
	})

	for _, fragment := range []string{
		"(LOWER(title) LIKE '%quay%' OR LOWER(address) LIKE '%quay%')",
		"type = 'APARTMENT'",
		"price <= 3000",
		"bedrooms >= 2",
		"ORDER BY created_at DESC",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("expected SQL to contain %q, got %s", fragment, sql)
		}
	}
	if strings.Count(sql, " AND ") != 3 {
		t.Errorf("expected the four dimensions to be ANDed, got %s", sql)
	}
}

func TestListingFilterScope_EmptyFilterMatchesAll(t *testing.T) {
	sql := renderFilter(dryRunDB(t), models.ListingFilter{})
	if strings.Contains(sql, "WHERE") {
		t.Errorf("expected no WHERE clause for empty filter, got %s", sql)
	}
}

func TestListingFilterScope_ZeroMinBedroomsIgnored(t *testing.T) {
	zero := 0
	sql := renderFilter(dryRunDB(t), models.ListingFilter{MaxPrice: &zero})
	if strings.Contains(sql, "bedrooms") {
		t.Errorf("minBedrooms=0 should not constrain, got %s", sql)
	}
	if !strings.Contains(sql, "price <= 0") {
		t.Errorf("an explicit maxPrice of 0 still constrains, got %s", sql)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":  "plain",
		"50%":    `50\%`,
		"a_b":    `a\_b`,
		`back\s`: `back\\s`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
