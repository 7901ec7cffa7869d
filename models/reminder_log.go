// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ContentID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Recipients   EmailList `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	SentAt       time.Time

	CreatedAt time.Time
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
