package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// ComplaintFilter narrows complaint list queries
type ComplaintFilter struct {
	RTNumber  string
	RWNumber  string
	CreatedBy *uint
	Status    models.ComplaintStatus
	Category  string
	Page      int
	Limit     int
}

// ComplaintRepository defines the interface for complaint data operations
type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	GetByID(id uint) (*models.Complaint, error)
	Update(complaint *models.Complaint) error
	List(filter ComplaintFilter) ([]*models.Complaint, int64, error)
}

// complaintRepository implements ComplaintRepository
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new instance of ComplaintRepository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{
		db: db,
	}
}

// Create inserts a new complaint
func (r *complaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// GetByID retrieves a complaint by primary key; returns (nil, nil) when missing
func (r *complaintRepository) GetByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.First(&complaint, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Update saves complaint changes
func (r *complaintRepository) Update(complaint *models.Complaint) error {
	return r.db.Save(complaint).Error
}

// List retrieves complaints matching the filter with pagination
func (r *complaintRepository) List(filter ComplaintFilter) ([]*models.Complaint, int64, error) {
	var complaints []*models.Complaint
	var total int64

	query := r.db.Model(&models.Complaint{})

	if filter.RTNumber != "" {
		query = query.Where("rt_number = ?", filter.RTNumber)
	}
	if filter.RWNumber != "" {
		query = query.Where("rw_number = ?", filter.RWNumber)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
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
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}
