package service

import (
	"time"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// CreateEventInput carries a new community event
type CreateEventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RTNumber    string    `json:"rt_number"`
	RWNumber    string    `json:"rw_number"`
}

// UpdateEventInput carries event edits
type UpdateEventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// EventService interface defines community event operations
type EventService interface {
	Create(actor authz.Actor, input CreateEventInput) (*models.Event, error)
	Get(actor authz.Actor, id uint) (*models.Event, error)
	List(actor authz.Actor, filter repository.EventFilter) ([]*models.Event, int64, error)
	Update(actor authz.Actor, id uint, input UpdateEventInput) (*models.Event, error)
	Delete(actor authz.Actor, id uint) error
}

// eventService implements EventService interface
type eventService struct {
	eventRepo repository.EventRepository
	logger    *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo repository.EventRepository, logger *logger.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Create registers a new event. RT creates inside its own territorial pair;
// RW and ADMIN choose the target territory, empty meaning RW-wide.
func (s *eventService) Create(actor authz.Actor, input CreateEventInput) (*models.Event, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, apperr.New(apperr.KindInvalidInput, "end_time must be after start_time")
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		RTNumber:    input.RTNumber,
		RWNumber:    input.RWNumber,
		CreatedBy:   actor.UserID,
	}

	if actor.Role == models.RoleRT {
		if actor.Territory == nil {
			return nil, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		event.RTNumber = actor.Territory.RTNumber
		event.RWNumber = actor.Territory.RWNumber
	} else if actor.Role == models.RoleRW && actor.Territory != nil && event.RWNumber == "" {
		event.RWNumber = actor.Territory.RWNumber
	}

	if err := s.eventRepo.Create(event); err != nil {
		s.logger.WithError(err).WithField("created_by", actor.UserID).Error("Failed to create event")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"event_id":   event.ID,
		"title":      event.Title,
		"start_time": event.StartTime,
		"created_by": actor.UserID,
	}).Info("Event created")

	return event, nil
}

// Get retrieves a single event. Events are readable by every authenticated
// user.
func (s *eventService) Get(actor authz.Actor, id uint) (*models.Event, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.New(apperr.KindNotFound, "event not found")
	}

	return event, nil
}

// List retrieves events visible to the actor. WARGA and RT see events in
// their own territory plus RW-wide ones the filter already matches.
func (s *eventService) List(actor authz.Actor, filter repository.EventFilter) ([]*models.Event, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	if actor.Role == models.RoleRT && actor.Territory != nil {
		filter.RTNumber = actor.Territory.RTNumber
		filter.RWNumber = actor.Territory.RWNumber
	}

	return s.eventRepo.List(filter)
}

func (s *eventService) eventSubject(e *models.Event) authz.Subject {
	sub := authz.Subject{OwnerUserID: e.CreatedBy}
	if e.RTNumber != "" {
		sub.Territory = &authz.Territory{RTNumber: e.RTNumber, RWNumber: e.RWNumber}
	}
	return sub
}

// Update edits an event. Creator, RT in territory, RW and ADMIN.
func (s *eventService) Update(actor authz.Actor, id uint, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.New(apperr.KindNotFound, "event not found")
	}

	if d := authz.CanMutate(actor, s.eventSubject(event)); !d.Allowed {
		return nil, d.Err()
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, apperr.New(apperr.KindInvalidInput, "end_time must be after start_time")
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	return event, nil
}

// Delete removes an event
func (s *eventService) Delete(actor authz.Actor, id uint) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperr.New(apperr.KindNotFound, "event not found")
	}

	if d := authz.CanMutate(actor, s.eventSubject(event)); !d.Allowed {
		return d.Err()
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"event_id":   id,
		"deleted_by": actor.UserID,
	}).Info("Event deleted")

	return nil
}
