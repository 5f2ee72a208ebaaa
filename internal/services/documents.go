package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/pkg/storage"
	"github.com/google/uuid"
)

// DocumentService stores document bytes in blob storage and metadata in the database
type DocumentService struct {
	repo  repositories.DocumentRepository
	blobs storage.BlobStore
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(repo repositories.DocumentRepository, blobs storage.BlobStore) *DocumentService {
	return &DocumentService{repo: repo, blobs: blobs}
}

// Upload describes one incoming file
type Upload struct {
	Name        string
	Category    models.DocumentCategory
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// List returns the user's documents, newest first
func (s *DocumentService) List(ctx context.Context, userID uint) ([]models.Document, error) {
	return s.repo.GetDocumentsByUser(ctx, userID)
}

// Upload writes the blob first, then the metadata row. A failed row insert removes the blob.
func (s *DocumentService) Upload(ctx context.Context, userID uint, up Upload) (*models.Document, error) {
	key := objectKey(userID, up.Filename)
	if err := s.blobs.Put(ctx, key, up.ContentType, up.Body); err != nil {
		return nil, fmt.Errorf("store document blob: %w", err)
	}

	doc := &models.Document{
		UserID:      userID,
		Name:        up.Name,
		Category:    up.Category,
		FileRef:     key,
		ContentType: up.ContentType,
		Size:        up.Size,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Printf("documents: orphaned blob %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("save document metadata: %w", err)
	}
	return doc, nil
}

// Delete removes the metadata row and then the blob. Documents of other users are not found.
func (s *DocumentService) Delete(ctx context.Context, userID, docID uint) error {
	doc, err := s.repo.GetUserDocument(ctx, userID, docID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUserDocument(ctx, userID, docID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, doc.FileRef); err != nil {
		log.Printf("documents: failed to delete blob %s: %v", doc.FileRef, err)
	}
	return nil
}

func objectKey(userID uint, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("documents/%d/%s%s", userID, uuid.NewString(), ext)
}
