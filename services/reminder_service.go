// services/reminder_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"content-calendar-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	defaultLeadHours       = 4
	defaultIntervalMinutes = 5
)

// ReminderSender delivers the reminder message for one content record.
type ReminderSender interface {
	SendReminder(content *models.Content) error
}

// ReminderService owns the periodic scan that matches due content to
// reminder dispatches. Each tick looks at the window
// [now+lead, now+lead+interval): ticked every interval, the windows
// tile the lead-time horizon so a record is scanned once per due
// period, with the reminder_sent flag guarding against re-sends.
type ReminderService struct {
	db       *gorm.DB
	sender   ReminderSender
	leadTime time.Duration
	interval time.Duration
	cron     *cron.Cron
}

func NewReminderService(db *gorm.DB, sender ReminderSender) *ReminderService {
	return &ReminderService{
		db:       db,
		sender:   sender,
		leadTime: envDuration("REMINDER_LEAD_HOURS", time.Hour, defaultLeadHours),
		interval: envDuration("REMINDER_INTERVAL_MINUTES", time.Minute, defaultIntervalMinutes),
	}
}

func envDuration(key string, unit time.Duration, fallback int) time.Duration {
	if env := os.Getenv(key); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return time.Duration(n) * unit
		}
		log.Printf("Ignoring invalid %s=%q", key, env)
	}
	return time.Duration(fallback) * unit
}

// StartScheduler begins the recurring scan. Recover keeps a panicking
// tick from stopping future ticks; SkipIfStillRunning drops a tick
// that comes due while the previous one is still dispatching, so two
// ticks can never double-dispatch the same record.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.ProcessDueReminders(time.Now())
	})

	s.cron.Start()
	log.Printf("Reminder scheduler started (every %s, lead time %s)", s.interval, s.leadTime)
}

// Stop halts the scheduler; a running tick finishes first.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// ProcessDueReminders runs one scan tick. Records are dispatched
// sequentially in ascending scheduled_time order; one record's failure
// is logged and never aborts the rest of the batch.
func (s *ReminderService) ProcessDueReminders(now time.Time) {
	windowStart := now.Add(s.leadTime)
	windowEnd := windowStart.Add(s.interval)

	due, err := models.FindDue(s.db, windowStart, windowEnd)
	if err != nil {
		log.Printf("Failed to fetch due content: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Printf("Found %d content item(s) due for reminders", len(due))

	for i := range due {
		content := &due[i]
		if err := s.sender.SendReminder(content); err != nil {
			log.Printf("Reminder failed for content %s: %v", content.ID, err)
			s.logReminder(content, "failed", err.Error())
			continue
		}
		if err := models.MarkReminded(s.db, content.ID); err != nil {
			if errors.Is(err, models.ErrContentNotFound) {
				// Deleted between selection and dispatch.
				log.Printf("Content %s deleted before it could be marked reminded", content.ID)
			} else {
				log.Printf("Failed to mark content %s reminded: %v", content.ID, err)
			}
			continue
		}
		log.Printf("Reminder sent for content %s", content.ID)
		s.logReminder(content, "sent", "")
	}
}

func (s *ReminderService) logReminder(content *models.Content, status, errorMsg string) {
	entry := models.ReminderLog{
		ContentID:    content.ID,
		Recipients:   content.Recipients,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for content %s: %v", content.ID, err)
	}
}
