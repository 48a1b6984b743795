package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/workflow"
	"smart-rw-svc/pkg/logger"
)

// RequestDocumentInput carries a new document request
type RequestDocumentInput struct {
	Type    string `json:"type" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// ProcessDocumentInput carries a requested status change
type ProcessDocumentInput struct {
	Status          models.DocumentStatus `json:"status" binding:"required"`
	RejectionReason string                `json:"rejection_reason"`
}

// DocumentService interface defines document request operations
type DocumentService interface {
	Request(actor authz.Actor, input RequestDocumentInput) (*models.Document, error)
	Get(actor authz.Actor, id uint) (*models.Document, error)
	List(actor authz.Actor, filter repository.DocumentFilter) ([]*models.Document, int64, error)
	Process(actor authz.Actor, id uint, input ProcessDocumentInput) (*models.Document, error)
}

// documentService implements DocumentService interface
type documentService struct {
	documentRepo     repository.DocumentRepository
	residentRepo     repository.ResidentRepository
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	residentRepo repository.ResidentRepository,
	notificationRepo repository.NotificationRepository,
	logger *logger.Logger,
) DocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		residentRepo:     residentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Request creates a new document request for the acting resident. The
// document inherits the territorial pair of the requester's resident profile.
func (s *documentService) Request(actor authz.Actor, input RequestDocumentInput) (*models.Document, error) {
	if d := authz.RequireRole(actor, models.RoleWarga); !d.Allowed {
		return nil, d.Err()
	}

	resident, err := s.residentRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, apperr.New(apperr.KindInvalidInput, "no resident profile linked to your account")
	}
	if !resident.IsVerified {
		return nil, apperr.New(apperr.KindForbidden, "resident profile is not verified yet")
	}

	document := &models.Document{
		DocumentNumber: fmt.Sprintf("DOC-%s-%s", strings.ToUpper(input.Type), uuid.New().String()[:8]),
		Type:           input.Type,
		Purpose:        input.Purpose,
		Status:         models.DocumentDiajukan,
		RequesterID:    actor.UserID,
		RTNumber:       resident.RTNumber,
		RWNumber:       resident.RWNumber,
	}

	if err := s.documentRepo.Create(document); err != nil {
		s.logger.WithError(err).WithField("user_id", actor.UserID).Error("Failed to create document request")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"document_id":     document.ID,
		"document_number": document.DocumentNumber,
		"type":            document.Type,
		"requester_id":    actor.UserID,
	}).Info("Document request created")

	return document, nil
}

func (s *documentService) subject(document *models.Document) (authz.Subject, error) {
	sub := authz.Subject{
		OwnerUserID: document.RequesterID,
		Territory:   &authz.Territory{RTNumber: document.RTNumber, RWNumber: document.RWNumber},
		Locked:      workflow.IsTerminalDocumentStatus(document.Status),
	}

	// Family members may read each other's requests.
	requester, err := s.residentRepo.GetByUserID(document.RequesterID)
	if err != nil {
		return sub, err
	}
	if requester != nil {
		sub.FamilyID = requester.FamilyID
	}

	return sub, nil
}

// Get retrieves a document the actor is allowed to see
func (s *documentService) Get(actor authz.Actor, id uint) (*models.Document, error) {
	document, err := s.documentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperr.New(apperr.KindNotFound, "document not found")
	}

	sub, err := s.subject(document)
	if err != nil {
		return nil, err
	}
	if d := authz.CanRead(actor, sub); !d.Allowed {
		return nil, d.Err()
	}

	return document, nil
}

// List retrieves documents scoped to the actor's role
func (s *documentService) List(actor authz.Actor, filter repository.DocumentFilter) ([]*models.Document, int64, error) {
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
		requesterID := actor.UserID
		filter.RequesterID = &requesterID
		filter.RTNumber = ""
		filter.RWNumber = ""
	}

	return s.documentRepo.List(filter)
}

// Process applies a status transition through the workflow guard and
// persists the result. The guard decides, the service mutates.
func (s *documentService) Process(actor authz.Actor, id uint, input ProcessDocumentInput) (*models.Document, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	document, err := s.documentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperr.New(apperr.KindNotFound, "document not found")
	}

	territory := authz.Territory{RTNumber: document.RTNumber, RWNumber: document.RWNumber}
	newStatus, err := workflow.AttemptDocumentTransition(document.Status, input.Status, actor, territory, input.RejectionReason)
	if err != nil {
		return nil, err
	}

	processor := actor.UserID
	document.Status = newStatus
	document.ProcessedBy = &processor
	if newStatus == models.DocumentDitolak {
		document.RejectionReason = strings.TrimSpace(input.RejectionReason)
	}
	if newStatus == models.DocumentSelesai {
		now := time.Now()
		document.CompletedAt = &now
	}

	if err := s.documentRepo.Update(document); err != nil {
		s.logger.WithError(err).WithField("document_id", document.ID).Error("Failed to update document status")
		return nil, err
	}

	s.notifyRequester(document)

	s.logger.WithFields(map[string]interface{}{
		"document_id":  document.ID,
		"status":       document.Status,
		"processed_by": actor.UserID,
	}).Info("Document status updated")

	return document, nil
}

// notifyRequester records an in-app notification for the document owner.
// Notification failure never fails the status change.
func (s *documentService) notifyRequester(document *models.Document) {
	message := fmt.Sprintf("Status surat %s berubah menjadi %s", document.DocumentNumber, document.Status)
	if document.Status == models.DocumentDitolak && document.RejectionReason != "" {
		message = fmt.Sprintf("Surat %s ditolak: %s", document.DocumentNumber, document.RejectionReason)
	}

	notification := &models.Notification{
		UserID:  document.RequesterID,
		Type:    "document",
		Title:   "Status Surat",
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithField("document_id", document.ID).Error("Failed to create document notification")
	}
}
