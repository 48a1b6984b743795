package service

import (
	"fmt"
	"strings"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/workflow"
	"smart-rw-svc/pkg/logger"
)

// CreateComplaintInput carries a new complaint
type CreateComplaintInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
}

// UpdateComplaintInput carries complaint edits by the creator
type UpdateComplaintInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HandleComplaintInput carries a requested complaint status change
type HandleComplaintInput struct {
	Status   models.ComplaintStatus `json:"status" binding:"required"`
	Response string                 `json:"response"`
}

// ComplaintService interface defines complaint operations
type ComplaintService interface {
	Create(actor authz.Actor, input CreateComplaintInput) (*models.Complaint, error)
	Get(actor authz.Actor, id uint) (*models.Complaint, error)
	List(actor authz.Actor, filter repository.ComplaintFilter) ([]*models.Complaint, int64, error)
	Update(actor authz.Actor, id uint, input UpdateComplaintInput) (*models.Complaint, error)
	Handle(actor authz.Actor, id uint, input HandleComplaintInput) (*models.Complaint, error)
}

// complaintService implements ComplaintService interface
type complaintService struct {
	complaintRepo    repository.ComplaintRepository
	residentRepo     repository.ResidentRepository
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	residentRepo repository.ResidentRepository,
	notificationRepo repository.NotificationRepository,
	logger *logger.Logger,
) ComplaintService {
	return &complaintService{
		complaintRepo:    complaintRepo,
		residentRepo:     residentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create files a new complaint in the actor's territory
func (s *complaintService) Create(actor authz.Actor, input CreateComplaintInput) (*models.Complaint, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	resident, err := s.residentRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindInvalidInput, "no resident profile linked to your account")
	}

	complaint := &models.Complaint{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      models.ComplaintDiterima,
		CreatedBy:   actor.UserID,
		RTNumber:    resident.RTNumber,
		RWNumber:    resident.RWNumber,
	}

	if err := s.complaintRepo.Create(complaint); err != nil {
		s.logger.WithError(err).WithField("user_id", actor.UserID).Error("Failed to create complaint")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": complaint.ID,
		"created_by":   actor.UserID,
		"rt":           complaint.RTNumber,
		"rw":           complaint.RWNumber,
	}).Info("Complaint created")

	return complaint, nil
}

func complaintSubject(c *models.Complaint) authz.Subject {
	return authz.Subject{
		OwnerUserID: c.CreatedBy,
		Territory:   &authz.Territory{RTNumber: c.RTNumber, RWNumber: c.RWNumber},
		// Creator edits are only allowed while the complaint is untouched.
		Locked: c.Status != models.ComplaintDiterima,
	}
}

// Get retrieves a complaint the actor is allowed to see
func (s *complaintService) Get(actor authz.Actor, id uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.New(apperr.KindNotFound, "complaint not found")
	}

	if d := authz.CanRead(actor, complaintSubject(complaint)); !d.Allowed {
		return nil, d.Err()
	}

	return complaint, nil
}

// List retrieves complaints scoped to the actor's role
func (s *complaintService) List(actor authz.Actor, filter repository.ComplaintFilter) ([]*models.Complaint, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	switch actor.Role {
	case models.RoleRT:
		if actor.Territory == nil {
			return nil, 0, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		filter.RTNumber = actor.Territory.RTNumber
		filter.RWNumber = actor.Territory.RWNumber
	case models.RoleWarga:
		createdBy := actor.UserID
		filter.CreatedBy = &createdBy
		filter.RTNumber = ""
		filter.RWNumber = ""
	}

	return s.complaintRepo.List(filter)
}

// Update edits a complaint. The creator may edit only while the status is
// still DITERIMA; ADMIN and RW override.
func (s *complaintService) Update(actor authz.Actor, id uint, input UpdateComplaintInput) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.New(apperr.KindNotFound, "complaint not found")
	}

	if d := authz.CanMutate(actor, complaintSubject(complaint)); !d.Allowed {
		return nil, d.Err()
	}

	if input.Title != "" {
		complaint.Title = input.Title
	}
	if input.Description != "" {
		complaint.Description = input.Description
	}
	if input.Category != "" {
		complaint.Category = input.Category
	}

	if err := s.complaintRepo.Update(complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

// Handle applies a complaint status transition through the workflow guard
func (s *complaintService) Handle(actor authz.Actor, id uint, input HandleComplaintInput) (*models.Complaint, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperr.New(apperr.KindNotFound, "complaint not found")
	}

	territory := authz.Territory{RTNumber: complaint.RTNumber, RWNumber: complaint.RWNumber}
	newStatus, err := workflow.AttemptComplaintTransition(complaint.Status, input.Status, actor, territory)
	if err != nil {
		return nil, err
	}

	handler := actor.UserID
	complaint.Status = newStatus
	complaint.HandledBy = &handler
	if response := strings.TrimSpace(input.Response); response != "" {
		complaint.Response = response
	}

	if err := s.complaintRepo.Update(complaint); err != nil {
		s.logger.WithError(err).WithField("complaint_id", complaint.ID).Error("Failed to update complaint status")
		return nil, err
	}

	notification := &models.Notification{
		UserID:  complaint.CreatedBy,
		Type:    "complaint",
		Title:   "Status Pengaduan",
		Message: fmt.Sprintf("Pengaduan \"%s\" berubah menjadi %s", complaint.Title, complaint.Status),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithField("complaint_id", complaint.ID).Error("Failed to create complaint notification")
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": complaint.ID,
		"status":       complaint.Status,
		"handled_by":   actor.UserID,
	}).Info("Complaint status updated")

	return complaint, nil
}
