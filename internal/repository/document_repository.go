package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// DocumentFilter narrows document list queries
type DocumentFilter struct {
	RTNumber    string
	RWNumber    string
	RequesterID *uint
	Status      models.DocumentStatus
	Type        string
	Page        int
	Limit       int
}

// DocumentRepository defines the interface for document data operations
type DocumentRepository interface {
	Create(document *models.Document) error
	GetByID(id uint) (*models.Document, error)
	Update(document *models.Document) error
	List(filter DocumentFilter) ([]*models.Document, int64, error)
}

// documentRepository implements DocumentRepository
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

// Create inserts a new document request
func (r *documentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

// GetByID retrieves a document by primary key; returns (nil, nil) when missing
func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var document models.Document
	err := r.db.First(&document, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// Update saves document changes
func (r *documentRepository) Update(document *models.Document) error {
	return r.db.Save(document).Error
}

// List retrieves documents matching the filter with pagination
func (r *documentRepository) List(filter DocumentFilter) ([]*models.Document, int64, error) {
	var documents []*models.Document
	var total int64

	query := r.db.Model(&models.Document{})

	if filter.RTNumber != "" {
		query = query.Where("rt_number = ?", filter.RTNumber)
	}
	if filter.RWNumber != "" {
		query = query.Where("rw_number = ?", filter.RWNumber)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}
