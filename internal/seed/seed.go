// Package seed loads the demo catalogue and accounts.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dwelli/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of both seeded accounts
const DemoPassword = "password123"

// Listings returns the Dublin demo catalogue. The first entry is the newest.
func Listings(now time.Time) []models.Listing {
	listings := []models.Listing{
		{
			Title:       "Modern 2-Bed Apartment in Grand Canal Dock",
			Address:     "Forbes Quay, Dublin 2",
			Price:       2800,
			Type:        models.PropertyApartment,
			Bedrooms:    2,
			Bathrooms:   2,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house1/600/400",
			Source:      "Daft.ie",
			Description: "Bright two-bedroom apartment with a balcony over the water, a modern kitchen and secure underground parking.",
		},
		{
			Title:       "Charming Studio in Ranelagh",
			Address:     "Ranelagh Village, Dublin 6",
			Price:       1600,
			Type:        models.PropertyStudio,
			Bedrooms:    1,
			Bathrooms:   1,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house2/600/400",
			Source:      "Rent.ie",
			Description: "Cosy studio in the middle of Ranelagh village, a short walk from the Luas green line.",
		},
		{
			Title:       "Spacious 4-Bed House in Dún Laoghaire",
			Address:     "Monkstown Road, Dún Laoghaire, Co. Dublin",
			Price:       4200,
			Type:        models.PropertyHouse,
			Bedrooms:    4,
			Bathrooms:   3,
			Furnished:   false,
			ImageURL:    "https://picsum.photos/seed/house3/600/400",
			Source:      "MyHome.ie",
			Description: "Unfurnished family home with a large private garden, minutes from the sea and the DART.",
		},
		{
			Title:       "Penthouse Apartment with City Views",
			Address:     "The Marker Residence, Dublin 2",
			Price:       5500,
			Type:        models.PropertyApartment,
			Bedrooms:    3,
			Bathrooms:   3,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house4/600/400",
			Source:      "Daft.ie",
			Description: "Furnished penthouse with panoramic city views, a residents' gym and concierge service.",
		},
		{
			Title:       "Refurbished 1-Bed in Portobello",
			Address:     "South Richmond Street, Dublin 8",
			Price:       1950,
			Type:        models.PropertyApartment,
			Bedrooms:    1,
			Bathrooms:   1,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house5/600/400",
			Source:      "Daft.ie",
			Description: "Newly refurbished one-bedroom apartment on the canal, walking distance from the city centre.",
		},
		{
			Title:       "Detached Family Home in Clontarf",
			Address:     "Clontarf Road, Dublin 3",
			Price:       3800,
			Type:        models.PropertyHouse,
			Bedrooms:    3,
			Bathrooms:   2,
			Furnished:   false,
			ImageURL:    "https://picsum.photos/seed/house6/600/400",
			Source:      "MyHome.ie",
			Description: "Seaside home facing Dublin Bay with two reception rooms and off-street parking.",
		},
		{
			Title:       "Cozy Studio in Temple Bar",
			Address:     "Eustace Street, Dublin 2",
			Price:       1800,
			Type:        models.PropertyStudio,
			Bedrooms:    1,
			Bathrooms:   1,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house7/600/400",
			Source:      "Rent.ie",
			Description: "Compact studio in Temple Bar for a single professional or student.",
		},
		{
			Title:       "Modern 3-Bed House in Rathmines",
			Address:     "Palmerston Park, Dublin 6",
			Price:       3500,
			Type:        models.PropertyHouse,
			Bedrooms:    3,
			Bathrooms:   2,
			Furnished:   true,
			ImageURL:    "https://picsum.photos/seed/house8/600/400",
			Source:      "Daft.ie",
			Description: "Furnished red-brick home overlooking Palmerston Park with a private rear patio.",
		},
	}
	for i := range listings {
		listings[i].CreatedAt = now.Add(-time.Duration(i) * time.Minute)
	}
	return listings
}

// Users returns the admin and demo accounts with the given password hash
func Users(passwordHash string) []models.User {
	return []models.User{
		{Email: "admin@dwelli.app", Username: "AdminUser", Password: passwordHash, Role: models.RoleAdmin},
		{Email: "user@dwelli.app", Username: "DemoUser", Password: passwordHash, Role: models.RoleUser, Profession: "Software Engineer"},
	}
}

// Run wipes listings, users and their dependents, then inserts the demo data
func Run(ctx context.Context, db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.SavedListing{}, &models.Document{}, &models.Listing{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		listings := Listings(time.Now().UTC())
		if err := tx.Create(&listings).Error; err != nil {
			return fmt.Errorf("seed listings: %w", err)
		}
		log.Printf("Seeded %d listings.", len(listings))

		users := Users(string(hash))
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		for _, u := range users {
			log.Printf("Created %s user: %s", u.Role, u.Email)
		}
		return nil
	})
}
