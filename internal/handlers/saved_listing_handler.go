package handlers

import (
	"errors"
	"net/http"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedListingHandler handles saved listing HTTP requests
type SavedListingHandler struct {
	savedListings *services.SavedListingService
}

// NewSavedListingHandler creates a new SavedListingHandler
func NewSavedListingHandler(savedListings *services.SavedListingService) *SavedListingHandler {
	return &SavedListingHandler{savedListings: savedListings}
}

// RegisterSavedListingRoutes registers saved listing routes
func (h *SavedListingHandler) RegisterSavedListingRoutes(g *echo.Group) {
	g.GET("/me/saved-listings", h.GetSavedListings)
	g.GET("/me/saved-listings/:listingId", h.GetSavedStatus)
	g.POST("/me/saved-listings/:listingId", h.ToggleSavedListing)
}

// GetSavedListings lists the authenticated user's bookmarks
func (h *SavedListingHandler) GetSavedListings(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	listings, err := h.savedListings.SavedListings(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// GetSavedStatus returns {"saved": bool} for one listing
func (h *SavedListingHandler) GetSavedStatus(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	listingID, err := parseIDParam(c, "listingId", "Listing not found")
	if err != nil {
		return err
	}

	saved, err := h.savedListings.IsSaved(c.Request().Context(), userID, listingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// ToggleSavedListing saves the listing if it is not saved and unsaves it otherwise
func (h *SavedListingHandler) ToggleSavedListing(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	listingID, err := parseIDParam(c, "listingId", "Listing not found")
	if err != nil {
		return err
	}

	saved, err := h.savedListings.Toggle(c.Request().Context(), userID, listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Listing not found")
		}
		return err
	}

	message := "Listing unsaved successfully."
	if saved {
		message = "Listing saved successfully."
	}
	return c.JSON(http.StatusOK, models.ToggleSavedResponse{Message: message, Saved: saved})
}
