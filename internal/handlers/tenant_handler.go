package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dwelli/backend/internal/ai"
	"github.com/dwelli/backend/internal/deck"
	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// TenantHandler produces the AI tenant summary and the rental deck PDF
type TenantHandler struct {
	userRepository repositories.UserRepository
	documents      *services.DocumentService
	assistant      *ai.Assistant
	now            func() time.Time
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(userRepo repositories.UserRepository, documents *services.DocumentService, assistant *ai.Assistant) *TenantHandler {
	return &TenantHandler{
		userRepository: userRepo,
		documents:      documents,
		assistant:      assistant,
		now:            time.Now,
	}
}

// RegisterTenantRoutes registers summary and rental deck routes
func (h *TenantHandler) RegisterTenantRoutes(g *echo.Group) {
	g.POST("/me/generate-summary", h.GenerateSummary)
	g.GET("/me/rental-deck", h.RentalDeck)
}

// GenerateSummary returns {"summary": ...}; it never fails because of the text generator
func (h *TenantHandler) GenerateSummary(c echo.Context) error {
	user, docs, err := h.loadProfile(c)
	if err != nil {
		return err
	}
	summary := h.summarize(c.Request().Context(), user, docs)
	return c.JSON(http.StatusOK, echo.Map{"summary": summary})
}

// RentalDeck renders the user's profile, summary and document list as a PDF
func (h *TenantHandler) RentalDeck(c echo.Context) error {
	user, docs, err := h.loadProfile(c)
	if err != nil {
		return err
	}

	pdf, err := deck.Build(deck.Profile{
		User:      user,
		Summary:   h.summarize(c.Request().Context(), user, docs),
		Documents: docs,
		Generated: h.now(),
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rental-deck.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (h *TenantHandler) loadProfile(c echo.Context) (*models.User, []models.Document, error) {
	user, err := loadCurrentUser(c, h.userRepository)
	if err != nil {
		return nil, nil, err
	}
	docs, err := h.documents.List(c.Request().Context(), user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, docs, nil
}

func (h *TenantHandler) summarize(ctx context.Context, user *models.User, docs []models.Document) string {
	refs := make([]ai.DocumentRef, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, ai.DocumentRef{Name: d.Name, Category: string(d.Category)})
	}
	return h.assistant.Summarize(ctx, ai.TenantIdentity{Name: user.Username, Profession: user.Profession}, refs)
}
