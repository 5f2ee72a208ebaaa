package models

import (
	"strings"
	"time"
)

// DocumentCategory classifies a tenant document
type DocumentCategory string

const (
	CategoryID        DocumentCategory = "ID"
	CategoryReference DocumentCategory = "REFERENCE"
	CategoryPayslip   DocumentCategory = "PAYSLIP"
	CategoryOther     DocumentCategory = "OTHER"
)

// ParseDocumentCategory matches a category case-insensitively
func ParseDocumentCategory(s string) (DocumentCategory, bool) {
	switch c := DocumentCategory(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryID, CategoryReference, CategoryPayslip, CategoryOther:
		return c, true
	}
	return "", false
}

// Document is the metadata row of an uploaded file. The bytes live in blob storage under FileRef.
type Document struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      uint             `json:"userId" gorm:"index;not null"`
	Name        string           `json:"name" gorm:"not null"`
	Category    DocumentCategory `json:"category" gorm:"type:varchar(16);not null"`
	FileRef     string           `json:"fileRef" gorm:"uniqueIndex;not null"`
	ContentType string           `json:"contentType"`
	Size        int64            `json:"size"`
	UploadedAt  time.Time        `json:"uploadedAt" gorm:"autoCreateTime"`
}

// UploadDocumentRequest holds the non-file form fields of a document upload
type UploadDocumentRequest struct {
	Name     string `form:"name" validate:"required,max=120"`
	Category string `form:"category" validate:"required,document_category"`
}
