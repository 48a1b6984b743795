package service

import (
	"time"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// CreateProgramInput carries a new social assistance program
type CreateProgramInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

// UpdateProgramInput carries program edits
type UpdateProgramInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// AddRecipientInput carries a new recipient registration
type AddRecipientInput struct {
	ResidentID uint   `json:"resident_id" binding:"required"`
	Notes      string `json:"notes"`
}

// AssistanceService interface defines social assistance operations.
// Programs are managed by ADMIN and RW; recipient verification is done by
// the RT of the resident's territory.
type AssistanceService interface {
	CreateProgram(actor authz.Actor, input CreateProgramInput) (*models.SocialAssistance, error)
	GetProgram(actor authz.Actor, id uint) (*models.SocialAssistance, []*models.SocialAssistanceRecipient, error)
	ListPrograms(actor authz.Actor, page, limit int) ([]*models.SocialAssistance, int64, error)
	UpdateProgram(actor authz.Actor, id uint, input UpdateProgramInput) (*models.SocialAssistance, error)
	DeleteProgram(actor authz.Actor, id uint) error
	AddRecipient(actor authz.Actor, programID uint, input AddRecipientInput) (*models.SocialAssistanceRecipient, error)
	VerifyRecipient(actor authz.Actor, recipientID uint) (*models.SocialAssistanceRecipient, error)
	RemoveRecipient(actor authz.Actor, recipientID uint) error
}

// assistanceService implements AssistanceService interface
type assistanceService struct {
	assistanceRepo repository.AssistanceRepository
	residentRepo   repository.ResidentRepository
	logger         *logger.Logger
}

// NewAssistanceService creates a new social assistance service
func NewAssistanceService(
	assistanceRepo repository.AssistanceRepository,
	residentRepo repository.ResidentRepository,
	logger *logger.Logger,
) AssistanceService {
	return &assistanceService{
		assistanceRepo: assistanceRepo,
		residentRepo:   residentRepo,
		logger:         logger,
	}
}

// CreateProgram registers a new assistance program. ADMIN and RW only.
func (s *assistanceService) CreateProgram(actor authz.Actor, input CreateProgramInput) (*models.SocialAssistance, error) {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperr.New(apperr.KindInvalidInput, "end_date must not be before start_date")
	}

	program := &models.SocialAssistance{
		Name:        input.Name,
		Description: input.Description,
		Source:      input.Source,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   actor.UserID,
	}

	if err := s.assistanceRepo.CreateProgram(program); err != nil {
		s.logger.WithError(err).WithField("created_by", actor.UserID).Error("Failed to create assistance program")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"program_id": program.ID,
		"name":       program.Name,
		"created_by": actor.UserID,
	}).Info("Assistance program created")

	return program, nil
}

// GetProgram retrieves a program with its recipients
func (s *assistanceService) GetProgram(actor authz.Actor, id uint) (*models.SocialAssistance, []*models.SocialAssistanceRecipient, error) {
	if !actor.Authenticated() {
		return nil, nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	program, err := s.assistanceRepo.GetProgramByID(id)
	if err != nil {
		return nil, nil, err
	}
	if program == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "assistance program not found")
	}

	recipients, err := s.assistanceRepo.ListRecipients(id)
	if err != nil {
		return nil, nil, err
	}

	return program, recipients, nil
}

// ListPrograms retrieves assistance programs for any authenticated user
func (s *assistanceService) ListPrograms(actor authz.Actor, page, limit int) ([]*models.SocialAssistance, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	return s.assistanceRepo.ListPrograms(page, limit)
}

// UpdateProgram edits a program. ADMIN and RW only.
func (s *assistanceService) UpdateProgram(actor authz.Actor, id uint, input UpdateProgramInput) (*models.SocialAssistance, error) {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	program, err := s.assistanceRepo.GetProgramByID(id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperr.New(apperr.KindNotFound, "assistance program not found")
	}

	if input.Name != "" {
		program.Name = input.Name
	}
	if input.Description != "" {
		program.Description = input.Description
	}
	if input.Source != "" {
		program.Source = input.Source
	}
	if input.StartDate != nil {
		program.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		program.EndDate = *input.EndDate
	}
	if program.EndDate.Before(program.StartDate) {
		return nil, apperr.New(apperr.KindInvalidInput, "end_date must not be before start_date")
	}

	if err := s.assistanceRepo.UpdateProgram(program); err != nil {
		return nil, err
	}

	return program, nil
}

// DeleteProgram removes a program and its recipient links. ADMIN and RW only.
func (s *assistanceService) DeleteProgram(actor authz.Actor, id uint) error {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return d.Err()
	}

	program, err := s.assistanceRepo.GetProgramByID(id)
	if err != nil {
		return err
	}
	if program == nil {
		return apperr.New(apperr.KindNotFound, "assistance program not found")
	}

	if err := s.assistanceRepo.DeleteProgram(id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"program_id": id,
		"deleted_by": actor.UserID,
	}).Info("Assistance program deleted")

	return nil
}

// AddRecipient registers a resident as a program recipient. RT may register
// residents of its own territorial pair; RW and ADMIN register anyone.
func (s *assistanceService) AddRecipient(actor authz.Actor, programID uint, input AddRecipientInput) (*models.SocialAssistanceRecipient, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	program, err := s.assistanceRepo.GetProgramByID(programID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperr.New(apperr.KindNotFound, "assistance program not found")
	}

	resident, err := s.residentRepo.GetByID(input.ResidentID)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindNotFound, "resident not found")
	}

	if actor.Role == models.RoleRT {
		target := authz.Territory{RTNumber: resident.RTNumber, RWNumber: resident.RWNumber}
		if actor.Territory == nil || !actor.Territory.Equal(target) {
			return nil, apperr.New(apperr.KindForbidden, "outside your RT")
		}
	}

	recipient := &models.SocialAssistanceRecipient{
		SocialAssistanceID: programID,
		ResidentID:         input.ResidentID,
		Notes:              input.Notes,
	}

	if err := s.assistanceRepo.AddRecipient(recipient); err != nil {
		return nil, err
	}

	return recipient, nil
}

// VerifyRecipient marks a recipient verified by the resident's RT. ADMIN and
// RW may verify anywhere. Idempotent on an already verified recipient.
func (s *assistanceService) VerifyRecipient(actor authz.Actor, recipientID uint) (*models.SocialAssistanceRecipient, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	recipient, err := s.assistanceRepo.GetRecipientByID(recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperr.New(apperr.KindNotFound, "recipient not found")
	}

	if actor.Role == models.RoleRT {
		resident, err := s.residentRepo.GetByID(recipient.ResidentID)
		if err != nil {
			return nil, err
		}
		if resident == nil {
			return nil, apperr.New(apperr.KindNotFound, "resident not found")
		}
		target := authz.Territory{RTNumber: resident.RTNumber, RWNumber: resident.RWNumber}
		if actor.Territory == nil || !actor.Territory.Equal(target) {
			return nil, apperr.New(apperr.KindForbidden, "outside your RT")
		}
	}

	if recipient.IsVerified {
		return recipient, nil
	}

	recipient.IsVerified = true
	if err := s.assistanceRepo.UpdateRecipient(recipient); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"recipient_id": recipient.ID,
		"verified_by":  actor.UserID,
	}).Info("Assistance recipient verified")

	return recipient, nil
}

// RemoveRecipient removes a resident from a program. ADMIN and RW only.
func (s *assistanceService) RemoveRecipient(actor authz.Actor, recipientID uint) error {
	if d := authz.RequireRole(actor, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return d.Err()
	}

	recipient, err := s.assistanceRepo.GetRecipientByID(recipientID)
	if err != nil {
		return err
	}
	if recipient == nil {
		return apperr.New(apperr.KindNotFound, "recipient not found")
	}

	return s.assistanceRepo.RemoveRecipient(recipientID)
}
