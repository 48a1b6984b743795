package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// AssistanceRepository defines the interface for social assistance data operations
type AssistanceRepository interface {
	CreateProgram(program *models.SocialAssistance) error
	GetProgramByID(id uint) (*models.SocialAssistance, error)
	UpdateProgram(program *models.SocialAssistance) error
	DeleteProgram(id uint) error
	ListPrograms(page, limit int) ([]*models.SocialAssistance, int64, error)
	AddRecipient(recipient *models.SocialAssistanceRecipient) error
	GetRecipientByID(id uint) (*models.SocialAssistanceRecipient, error)
	UpdateRecipient(recipient *models.SocialAssistanceRecipient) error
	RemoveRecipient(id uint) error
	ListRecipients(programID uint) ([]*models.SocialAssistanceRecipient, error)
}

// assistanceRepository implements AssistanceRepository
type assistanceRepository struct {
	db *gorm.DB
}

// NewAssistanceRepository creates a new instance of AssistanceRepository
func NewAssistanceRepository(db *gorm.DB) AssistanceRepository {
	return &assistanceRepository{
		db: db,
	}
}

// CreateProgram inserts a new assistance program
func (r *assistanceRepository) CreateProgram(program *models.SocialAssistance) error {
	return r.db.Create(program).Error
}

// GetProgramByID retrieves a program by primary key; returns (nil, nil) when missing
func (r *assistanceRepository) GetProgramByID(id uint) (*models.SocialAssistance, error) {
	var program models.SocialAssistance
	err := r.db.First(&program, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// UpdateProgram saves program changes
func (r *assistanceRepository) UpdateProgram(program *models.SocialAssistance) error {
	return r.db.Save(program).Error
}

// DeleteProgram removes a program and its recipient links
func (r *assistanceRepository) DeleteProgram(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("social_assistance_id = ?", id).Delete(&models.SocialAssistanceRecipient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SocialAssistance{}, id).Error
	})
}

// ListPrograms retrieves assistance programs, newest first
func (r *assistanceRepository) ListPrograms(page, limit int) ([]*models.SocialAssistance, int64, error) {
	var programs []*models.SocialAssistance
	var total int64

	if err := r.db.Model(&models.SocialAssistance{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	err := r.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&programs).Error
	if err != nil {
		return nil, 0, err
	}

	return programs, total, nil
}

// AddRecipient inserts a new program recipient
func (r *assistanceRepository) AddRecipient(recipient *models.SocialAssistanceRecipient) error {
	return r.db.Create(recipient).Error
}

// GetRecipientByID retrieves a recipient by primary key; returns (nil, nil) when missing
func (r *assistanceRepository) GetRecipientByID(id uint) (*models.SocialAssistanceRecipient, error) {
	var recipient models.SocialAssistanceRecipient
	err := r.db.First(&recipient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// UpdateRecipient saves recipient changes
func (r *assistanceRepository) UpdateRecipient(recipient *models.SocialAssistanceRecipient) error {
	return r.db.Save(recipient).Error
}

// RemoveRecipient removes a recipient link
func (r *assistanceRepository) RemoveRecipient(id uint) error {
	return r.db.Delete(&models.SocialAssistanceRecipient{}, id).Error
}

// ListRecipients retrieves all recipients of a program
func (r *assistanceRepository) ListRecipients(programID uint) ([]*models.SocialAssistanceRecipient, error) {
	var recipients []*models.SocialAssistanceRecipient
	err := r.db.Where("social_assistance_id = ?", programID).
		Order("created_at ASC").
		Find(&recipients).Error
	if err != nil {
		return nil, err
	}
	return recipients, nil
}
