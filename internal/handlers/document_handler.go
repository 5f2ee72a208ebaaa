package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/internal/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

// MaxDocumentSize caps a single uploaded file
const MaxDocumentSize = 10 << 20

var allowedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// DocumentHandler handles the tenant document vault
type DocumentHandler struct {
	documents *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// RegisterDocumentRoutes registers document routes
func (h *DocumentHandler) RegisterDocumentRoutes(g *echo.Group) {
	g.GET("/me/documents", h.GetDocuments)
	g.POST("/me/documents", h.UploadDocument)
	g.DELETE("/me/documents/:id", h.DeleteDocument)
}

// GetDocuments lists the authenticated user's documents
func (h *DocumentHandler) GetDocuments(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	docs, err := h.documents.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadDocument accepts multipart/form-data with fields file, name and category
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	req := models.UploadDocumentRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Category: c.FormValue("category"),
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	category, _ := models.ParseDocumentCategory(req.Category)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file is required")
	}
	if fileHeader.Size > MaxDocumentSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the 10 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	if !mimetype.EqualsAny(mtype.String(), allowedDocumentTypes...) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Only PDF, JPEG and PNG files are accepted")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	doc, err := h.documents.Upload(c.Request().Context(), userID, services.Upload{
		Name:        req.Name,
		Category:    category,
		Filename:    fileHeader.Filename,
		ContentType: mtype.String(),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// DeleteDocument removes one of the authenticated user's documents
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	docID, err := parseIDParam(c, "id", "Document not found")
	if err != nil {
		return err
	}

	if err := h.documents.Delete(c.Request().Context(), userID, docID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
