package services

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
	"compliance-backend/storage"
)

// DocumentService stores uploaded files in the blob store and their metadata
// in the database.
type DocumentService struct {
	db    *gorm.DB
	store storage.DocumentStore
}

func NewDocumentService(db *gorm.DB, store storage.DocumentStore) *DocumentService {
	return &DocumentService{db: db, store: store}
}

type UploadDocumentInput struct {
	OriginalFilename string
	MimeType         string
	Size             int64
	ClientID         *uint
	ProjectID        *uint
	TaskID           *uint
	UploadedBy       uint
}

// Upload writes the blob first, then the metadata row. If the row cannot be
// written the blob is removed again so the store holds no orphans.
func (s *DocumentService) Upload(ctx context.Context, in UploadDocumentInput, r io.Reader) (*models.Document, error) {
	key := storage.NewStorageKey(in.OriginalFilename)
	if err := s.store.Put(ctx, key, in.MimeType, r); err != nil {
		return nil, err
	}

	doc := models.Document{
		Filename:         key,
		OriginalFilename: in.OriginalFilename,
		StoragePath:      key,
		FileSize:         in.Size,
		MimeType:         in.MimeType,
		ClientID:         in.ClientID,
		ProjectID:        in.ProjectID,
		TaskID:           in.TaskID,
		UploadedBy:       in.UploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return &doc, nil
}

// Get returns document metadata.
func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Open returns the blob contents for download.
func (s *DocumentService) Open(ctx context.Context, id uint) (*models.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// List returns document metadata filtered by owning client.
func (s *DocumentService) List(ctx context.Context, skip, limit int, clientID uint) ([]models.Document, error) {
	q := s.db.WithContext(ctx).Model(&models.Document{})
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	var docs []models.Document
	err := q.Order("id DESC").Offset(skip).Limit(pageLimit(limit)).Find(&docs).Error
	return docs, err
}

// Delete removes the metadata row and then the blob (best effort).
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(doc).Error; err != nil {
		return err
	}
	_ = s.store.Delete(ctx, doc.StoragePath)
	return nil
}
