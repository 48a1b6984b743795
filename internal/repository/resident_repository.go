package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// ResidentFilter narrows resident list queries
type ResidentFilter struct {
	RTNumber   string
	RWNumber   string
	FamilyID   *uint
	IsVerified *bool
	Search     string
	Page       int
	Limit      int
}

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	Create(resident *models.Resident) error
	GetByID(id uint) (*models.Resident, error)
	GetByUserID(userID uint) (*models.Resident, error)
	Update(resident *models.Resident) error
	List(filter ResidentFilter) ([]*models.Resident, int64, error)
	ListUserIDsByTerritory(rtNumber, rwNumber string) ([]uint, error)
	GetFamilyByID(id uint) (*models.Family, error)
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Create inserts a new resident
func (r *residentRepository) Create(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// GetByID retrieves a resident by primary key; returns (nil, nil) when missing
func (r *residentRepository) GetByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.First(&resident, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// GetByUserID retrieves the resident profile owned by a user
func (r *residentRepository) GetByUserID(userID uint) (*models.Resident, error) {
	var resident models.Resident
	err := r.db.Where("user_id = ?", userID).First(&resident).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// Update saves resident changes
func (r *residentRepository) Update(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// List retrieves residents matching the filter with pagination
func (r *residentRepository) List(filter ResidentFilter) ([]*models.Resident, int64, error) {
	var residents []*models.Resident
	var total int64

	query := r.db.Model(&models.Resident{})

	if filter.RTNumber != "" {
		query = query.Where("rt_number = ?", filter.RTNumber)
	}
	if filter.RWNumber != "" {
		query = query.Where("rw_number = ?", filter.RWNumber)
	}
	if filter.FamilyID != nil {
		query = query.Where("family_id = ?", *filter.FamilyID)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.Search != "" {
		query = query.Where("full_name ILIKE ? OR nik LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
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

	err := query.Order("full_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&residents).Error
	if err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// ListUserIDsByTerritory returns the owning user ids of all residents in a territory
func (r *residentRepository) ListUserIDsByTerritory(rtNumber, rwNumber string) ([]uint, error) {
	var userIDs []uint
	err := r.db.Model(&models.Resident{}).
		Where("rt_number = ? AND rw_number = ?", rtNumber, rwNumber).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// GetFamilyByID retrieves a family card by primary key; returns (nil, nil) when missing
func (r *residentRepository) GetFamilyByID(id uint) (*models.Family, error) {
	var family models.Family
	err := r.db.First(&family, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &family, nil
}
