package services

import (
	"errors"
	"testing"
	"time"

	"content-calendar-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeSender records dispatch order and fails for selected records.
type fakeSender struct {
	sent    []uuid.UUID
	failFor map[uuid.UUID]error
	onSend  func(content *models.Content)
}

func (f *fakeSender) SendReminder(content *models.Content) error {
	if f.onSend != nil {
		f.onSend(content)
	}
	if err, ok := f.failFor[content.ID]; ok {
		return err
	}
	f.sent = append(f.sent, content.ID)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Content{}, &models.ReminderLog{}))
	return db
}

func newTestService(db *gorm.DB, sender ReminderSender) *ReminderService {
	return &ReminderService{
		db:       db,
		sender:   sender,
		leadTime: 4 * time.Hour,
		interval: 5 * time.Minute,
	}
}

func seedContent(t *testing.T, db *gorm.DB, scheduled time.Time) models.Content {
	t.Helper()
	content := models.Content{
		Date:          time.Date(scheduled.Year(), scheduled.Month(), scheduled.Day(), 0, 0, 0, 0, scheduled.Location()),
		ContentType:   models.ContentTypePost,
		Caption:       "Campaign kickoff",
		ScheduledTime: scheduled,
		Recipients:    models.EmailList{"a@x.com"},
		ClientName:    "Acme",
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}

func TestProcessDueRemindersMarksDispatchedContent(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := newTestService(db, sender)

	now := time.Now().Truncate(time.Minute)
	content := seedContent(t, db, now.Add(4*time.Hour+time.Minute))

	svc.ProcessDueReminders(now)

	require.Equal(t, []uuid.UUID{content.ID}, sender.sent)

	var stored models.Content
	require.NoError(t, db.First(&stored, "id = ?", content.ID).Error)
	assert.True(t, stored.ReminderSent)

	// A second identical scan finds nothing.
	sender.sent = nil
	svc.ProcessDueReminders(now)
	assert.Empty(t, sender.sent)
}

func TestProcessDueRemindersIgnoresContentOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := newTestService(db, sender)

	now := time.Now().Truncate(time.Minute)
	// One record well before the lead horizon, one beyond this tick's window.
	seedContent(t, db, now.Add(time.Hour))
	seedContent(t, db, now.Add(4*time.Hour+6*time.Minute))

	svc.ProcessDueReminders(now)

	assert.Empty(t, sender.sent)
}

func TestProcessDueRemindersIsolatesFailures(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().Truncate(time.Minute)
	first := seedContent(t, db, now.Add(4*time.Hour+time.Minute))
	second := seedContent(t, db, now.Add(4*time.Hour+2*time.Minute))
	third := seedContent(t, db, now.Add(4*time.Hour+3*time.Minute))

	sender := &fakeSender{failFor: map[uuid.UUID]error{
		second.ID: errors.New("smtp connection refused"),
	}}
	svc := newTestService(db, sender)

	svc.ProcessDueReminders(now)

	// The failing record does not abort the batch; dispatch order
	// follows ascending scheduled time.
	require.Equal(t, []uuid.UUID{first.ID, third.ID}, sender.sent)

	var failed models.Content
	require.NoError(t, db.First(&failed, "id = ?", second.ID).Error)
	assert.False(t, failed.ReminderSent)

	var sentLogs, failedLogs int64
	require.NoError(t, db.Model(&models.ReminderLog{}).Where("status = ?", "sent").Count(&sentLogs).Error)
	require.NoError(t, db.Model(&models.ReminderLog{}).Where("status = ?", "failed").Count(&failedLogs).Error)
	assert.Equal(t, int64(2), sentLogs)
	assert.Equal(t, int64(1), failedLogs)
}

func TestProcessDueRemindersSurvivesDeleteDuringDispatch(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().Truncate(time.Minute)
	doomed := seedContent(t, db, now.Add(4*time.Hour+time.Minute))
	survivor := seedContent(t, db, now.Add(4*time.Hour+2*time.Minute))

	sender := &fakeSender{}
	sender.onSend = func(content *models.Content) {
		if content.ID == doomed.ID {
			require.NoError(t, db.Delete(&models.Content{}, "id = ?", doomed.ID).Error)
		}
	}
	svc := newTestService(db, sender)

	svc.ProcessDueReminders(now)

	// The vanished record is skipped without aborting the batch.
	require.Equal(t, []uuid.UUID{doomed.ID, survivor.ID}, sender.sent)

	var stored models.Content
	require.NoError(t, db.First(&stored, "id = ?", survivor.ID).Error)
	assert.True(t, stored.ReminderSent)
}
