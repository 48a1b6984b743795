package scheduler

import (
	"fmt"
	"time"

	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// EventScheduler handles scheduled event reminder delivery
type EventScheduler struct {
	eventRepo        repository.EventRepository
	residentRepo     repository.ResidentRepository
	notificationRepo repository.NotificationRepository
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// NewEventScheduler creates a new event reminder scheduler
func NewEventScheduler(
	eventRepo repository.EventRepository,
	residentRepo repository.ResidentRepository,
	notificationRepo repository.NotificationRepository,
	schedulerLogRepo repository.SchedulerLogRepository,
	logger *logger.Logger,
	cronExpression string,
) *EventScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &EventScheduler{
		eventRepo:        eventRepo,
		residentRepo:     residentRepo,
		notificationRepo: notificationRepo,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *EventScheduler) Start() error {
	s.logger.Info("Starting event scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling event reminder job")
	_, err := s.cron.AddFunc(s.cronExpression, s.sendEventReminders)
	if err != nil {
		return fmt.Errorf("failed to schedule event reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Event scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *EventScheduler) Stop() {
	s.logger.Info("Stopping event scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Event scheduler stopped successfully")
}

// sendEventReminders is the scheduled job that notifies residents about
// events starting the next day
func (s *EventScheduler) sendEventReminders() {
	jobCode := "EVENT_REMINDER"
	runID := uuid.New().String()

	s.logScheduler(jobCode, runID, "Starting scheduled event reminder run", "START")
	s.logger.Info("Starting scheduled event reminder run...")

	// Window: tomorrow, midnight to midnight local time
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	s.logScheduler(jobCode, runID, fmt.Sprintf("Collecting events between %s and %s", from.Format(time.RFC3339), to.Format(time.RFC3339)), "RUNNING")

	events, err := s.eventRepo.ListStartingBetween(from, to)
	if err != nil {
		s.logScheduler(jobCode, runID, fmt.Sprintf("Failed to list events: %v", err), "FAILED")
		s.logger.WithError(err).Error("Failed to list events for reminder")
		return
	}

	sent := 0
	for _, event := range events {
		userIDs, err := s.residentRepo.ListUserIDsByTerritory(event.RTNumber, event.RWNumber)
		if err != nil {
			s.logScheduler(jobCode, runID, fmt.Sprintf("Failed to resolve recipients for event %d: %v", event.ID, err), "FAILED")
			s.logger.WithError(err).WithField("event_id", event.ID).Error("Failed to resolve reminder recipients")
			return
		}

		notifications := make([]*models.Notification, 0, len(userIDs))
		for _, userID := range userIDs {
			notifications = append(notifications, &models.Notification{
				UserID:  userID,
				Type:    "event",
				Title:   "Pengingat Kegiatan",
				Message: fmt.Sprintf("Besok: %s di %s pukul %s", event.Title, event.Location, event.StartTime.Format("15:04")),
			})
		}

		if err := s.notificationRepo.CreateBatch(notifications); err != nil {
			s.logScheduler(jobCode, runID, fmt.Sprintf("Failed to store reminders for event %d: %v", event.ID, err), "FAILED")
			s.logger.WithError(err).WithField("event_id", event.ID).Error("Failed to store event reminders")
			return
		}
		sent += len(notifications)
	}

	successMessage := fmt.Sprintf("Sent %d reminders for %d events", sent, len(events))
	s.logScheduler(jobCode, runID, successMessage, "SUCCESS")

	s.logger.WithFields(map[string]interface{}{
		"events":    len(events),
		"reminders": sent,
	}).Info("Scheduled event reminder run completed")
}

// logScheduler creates a new log entry in the database
func (s *EventScheduler) logScheduler(jobCode, runID, message, status string) {
	logEntry := &models.SchedulerLog{
		RunID:   runID,
		JobCode: jobCode,
		Message: message,
		Status:  status,
	}

	if err := s.schedulerLogRepo.Create(logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
