package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"content-calendar-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypePost  = "post"
	ContentTypeReel  = "reel"
	ContentTypeStory = "story"
)

const MaxCaptionLength = 2200

var ErrContentNotFound = errors.New("content not found")

// EmailList stores the recipient addresses as a JSON-encoded text
// column. Addresses are normalized (trimmed, lower-cased) before they
// reach the database, so membership lookups can match on the quoted
// literal.
type EmailList []string

func (e EmailList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(e))
	return string(b), err
}

func (e *EmailList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return errors.New("type assertion to []byte or string failed")
	}
}

type Content struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	ContentType string    `gorm:"type:varchar(10);not null" json:"contentType"`
	Caption     string    `gorm:"type:text;not null" json:"caption"`
	ContentLink string    `json:"contentLink,omitempty"`

	ScheduledTime time.Time `gorm:"index:idx_sched_reminder,priority:1;not null" json:"scheduledTime"`
	ReminderSent  bool      `gorm:"index:idx_sched_reminder,priority:2;default:false" json:"reminderSent"`

	Recipients EmailList `gorm:"type:text;not null" json:"recipients"`
	ClientName string    `gorm:"not null" json:"clientName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ct *Content) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}

// Validate collects every violated rule instead of stopping at the
// first, so the API can report all problems in one response.
func (ct *Content) Validate() []string {
	var errs []string

	if ct.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	switch ct.ContentType {
	case ContentTypePost, ContentTypeReel, ContentTypeStory:
	case "":
		errs = append(errs, "contentType is required")
	default:
		errs = append(errs, fmt.Sprintf("contentType must be one of post, reel, story (got %q)", ct.ContentType))
	}
	if ct.Caption == "" {
		errs = append(errs, "caption is required")
	} else if len(ct.Caption) > MaxCaptionLength {
		errs = append(errs, fmt.Sprintf("caption must be at most %d characters", MaxCaptionLength))
	}
	if ct.ContentLink != "" && !utils.ValidateURL(ct.ContentLink) {
		errs = append(errs, "contentLink must be a valid URL")
	}
	if ct.ScheduledTime.IsZero() {
		errs = append(errs, "scheduledTime is required")
	}
	if len(ct.Recipients) == 0 {
		errs = append(errs, "at least one recipient email is required")
	}
	for _, email := range ct.Recipients {
		if !utils.ValidateEmail(email) {
			errs = append(errs, fmt.Sprintf("invalid recipient email: %q", email))
		}
	}
	if strings.TrimSpace(ct.ClientName) == "" {
		errs = append(errs, "clientName is required")
	}

	return errs
}

// FindDue returns unreminded content with scheduled_time in
// [start, end), ordered ascending. The half-open bound keeps adjacent
// scan windows from returning the same instant twice.
func FindDue(db *gorm.DB, start, end time.Time) ([]Content, error) {
	var due []Content
	err := db.
		Where("scheduled_time >= ? AND scheduled_time < ? AND reminder_sent = ?", start, end, false).
		Order("scheduled_time asc").
		Find(&due).Error
	return due, err
}

// MarkReminded flips the reminder flag. Setting it when already true is
// a no-op; a missing row (deleted between selection and dispatch)
// reports ErrContentNotFound.
func MarkReminded(db *gorm.DB, id uuid.UUID) error {
	tx := db.Model(&Content{}).Where("id = ?", id).Update("reminder_sent", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var count int64
		if err := db.Model(&Content{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrContentNotFound
		}
	}
	return nil
}
