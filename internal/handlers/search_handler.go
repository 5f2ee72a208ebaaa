package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SearchPreferenceHandler handles saved searches
type SearchPreferenceHandler struct {
	searchRepository repositories.SearchPreferenceRepository
}

// NewSearchPreferenceHandler creates a new SearchPreferenceHandler
func NewSearchPreferenceHandler(searchRepo repositories.SearchPreferenceRepository) *SearchPreferenceHandler {
	return &SearchPreferenceHandler{searchRepository: searchRepo}
}

// RegisterSearchRoutes registers saved search routes
func (h *SearchPreferenceHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/me/searches", h.GetSearches)
	g.POST("/me/searches", h.CreateSearch)
	g.DELETE("/me/searches/:id", h.DeleteSearch)
}

func (h *SearchPreferenceHandler) GetSearches(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	prefs, err := h.searchRepository.GetSearchPreferencesByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *SearchPreferenceHandler) CreateSearch(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.CreateSearchPreferenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	propertyType := string(models.AnyPropertyType)
	if req.Type != "" {
		if pt, ok := models.ParsePropertyType(req.Type); ok {
			propertyType = string(pt)
		}
	}

	pref := &models.SearchPreference{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		Type:        propertyType,
		MinBedrooms: req.MinBedrooms,
	}
	if err := h.searchRepository.CreateSearchPreference(c.Request().Context(), pref); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pref)
}

func (h *SearchPreferenceHandler) DeleteSearch(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := h.searchRepository.DeleteSearchPreference(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Saved search not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
