package repositories

import (
	"context"

	"github.com/dwelli/backend/internal/models"
	"gorm.io/gorm"
)

// DocumentRepository defines the metadata operations for tenant documents
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentsByUser(ctx context.Context, userID uint) ([]models.Document, error)
	GetUserDocument(ctx context.Context, userID, docID uint) (*models.Document, error)
	DeleteUserDocument(ctx context.Context, userID, docID uint) error
}

// PostgresDocumentRepository implements DocumentRepository
type PostgresDocumentRepository struct {
	db *gorm.DB
}

func NewPostgresDocumentRepository(db *gorm.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

func (r *PostgresDocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) error {
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *PostgresDocumentRepository) GetDocumentsByUser(ctx context.Context, userID uint) ([]models.Document, error) {
	docs := []models.Document{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("uploaded_at DESC").Find(&docs).Error
	return docs, err
}

// GetUserDocument scopes the lookup to the owner; other users' documents are not found
func (r *PostgresDocumentRepository) GetUserDocument(ctx context.Context, userID, docID uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", docID, userID).First(&doc).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *PostgresDocumentRepository) DeleteUserDocument(ctx context.Context, userID, docID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", docID, userID).Delete(&models.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
