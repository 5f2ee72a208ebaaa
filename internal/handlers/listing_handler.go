package handlers

import (
	"errors"
	"net/http"

	"github.com/dwelli/backend/internal/ai"
	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ListingHandler serves the public listing catalogue
type ListingHandler struct {
	listingRepository repositories.ListingRepository
	assistant         *ai.Assistant
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingRepo repositories.ListingRepository, assistant *ai.Assistant) *ListingHandler {
	return &ListingHandler{listingRepository: listingRepo, assistant: assistant}
}

// RegisterListingRoutes registers listing routes; none require a credential
func (h *ListingHandler) RegisterListingRoutes(g *echo.Group) {
	g.GET("", h.GetListings)
	g.GET("/:id", h.GetListing)
	g.POST("/:id/explain-match", h.ExplainMatch)
}

// GetListings handles GET /listings?searchTerm=&propertyType=&maxPrice=&minBedrooms=
func (h *ListingHandler) GetListings(c echo.Context) error {
	var q models.ListingQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	filter, err := models.ParseListingFilter(q)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listings, err := h.listingRepository.FindListings(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /listings/:id
func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.loadListing(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// ExplainMatch handles POST /listings/:id/explain-match
func (h *ListingHandler) ExplainMatch(c echo.Context) error {
	var req models.ExplainMatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.loadListing(c)
	if err != nil {
		return err
	}

	explanation := h.assistant.ExplainMatch(c.Request().Context(), listing.Title, req.UserPreferences)
	return c.JSON(http.StatusOK, echo.Map{"explanation": explanation})
}

func (h *ListingHandler) loadListing(c echo.Context) (*models.Listing, error) {
	id, err := parseIDParam(c, "id", "Listing not found")
	if err != nil {
		return nil, err
	}
	listing, err := h.listingRepository.GetListingByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Listing not found")
		}
		return nil, err
	}
	return listing, nil
}
