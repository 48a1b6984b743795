package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// EventFilter narrows event list queries
type EventFilter struct {
	RTNumber string
	RWNumber string
	After    *time.Time
	Page     int
	Limit    int
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	List(filter EventFilter) ([]*models.Event, int64, error)
	ListStartingBetween(from, to time.Time) ([]*models.Event, error)
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

// Create inserts a new event
func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// GetByID retrieves an event by primary key; returns (nil, nil) when missing
func (r *eventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update saves event changes
func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event
func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// List retrieves events matching the filter with pagination
func (r *eventRepository) List(filter EventFilter) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := r.db.Model(&models.Event{})

	if filter.RTNumber != "" {
		query = query.Where("rt_number = ?", filter.RTNumber)
	}
	if filter.RWNumber != "" {
		query = query.Where("rw_number = ?", filter.RWNumber)
	}
	if filter.After != nil {
		query = query.Where("start_time >= ?", *filter.After)
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

	err := query.Order("start_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListStartingBetween retrieves events starting inside the window, used by
// the reminder scheduler
func (r *eventRepository) ListStartingBetween(from, to time.Time) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
