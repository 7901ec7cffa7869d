package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"content-calendar-backend/config"
	"content-calendar-backend/models"
	"content-calendar-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateContentInput defines the expected JSON structure for creating
// a content item. Date is "2006-01-02"; scheduledTime is a 24h "HH:MM"
// clock that gets merged with the date into the scheduled instant.
type CreateContentInput struct {
	Date          string   `json:"date"`
	ContentType   string   `json:"contentType"`
	Caption       string   `json:"caption"`
	ContentLink   string   `json:"contentLink"`
	ScheduledTime string   `json:"scheduledTime"`
	Recipients    []string `json:"recipients"`
	ClientName    string   `json:"clientName"`
}

// UpdateContentInput is a partial patch; nil means "field not supplied".
type UpdateContentInput struct {
	Date          *string   `json:"date"`
	ContentType   *string   `json:"contentType"`
	Caption       *string   `json:"caption"`
	ContentLink   *string   `json:"contentLink"`
	ScheduledTime *string   `json:"scheduledTime"`
	Recipients    *[]string `json:"recipients"`
	ClientName    *string   `json:"clientName"`
}

// CreateContent creates a new scheduled content item
func CreateContent(c *gin.Context) {
	var input CreateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var errs []string

	var contentDate time.Time
	if input.Date != "" {
		d, err := utils.ParseDate(input.Date)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			contentDate = d
		}
	}

	var scheduled time.Time
	if input.ScheduledTime != "" {
		hour, min, err := utils.ParseClock(input.ScheduledTime)
		if err != nil {
			errs = append(errs, err.Error())
		} else if !contentDate.IsZero() {
			scheduled = utils.CombineDateTime(contentDate, hour, min)
		}
	}

	content := models.Content{
		Date:          contentDate,
		ContentType:   input.ContentType,
		Caption:       input.Caption,
		ContentLink:   input.ContentLink,
		ScheduledTime: scheduled,
		Recipients:    utils.NormalizeEmails(input.Recipients),
		ClientName:    strings.TrimSpace(input.ClientName),
	}

	errs = append(errs, content.Validate()...)
	if len(errs) > 0 {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	if !scheduled.After(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "Scheduled time cannot be in the past")
		return
	}

	if err := config.DB.Create(&content).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create content")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Content created successfully",
		"content": content,
	})
}

// GetContent lists content filtered by date, date range, recipient
// membership, or client name substring, ordered by scheduled time.
func GetContent(c *gin.Context) {
	query := config.DB.Model(&models.Content{})

	if date := c.Query("date"); date != "" {
		target, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", utils.BeginningOfDay(target), utils.EndOfDay(target))
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" && endDate != "" {
		start, err := utils.ParseDate(startDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		end, err := utils.ParseDate(endDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", utils.BeginningOfDay(start), utils.EndOfDay(end))
	}

	if recipient := c.Query("recipient"); recipient != "" {
		// Recipients are stored normalized, so matching on the quoted
		// lower-cased literal finds membership in the JSON list.
		normalized := strings.ToLower(strings.TrimSpace(recipient))
		query = query.Where("recipients LIKE ?", fmt.Sprintf(`%%"%s"%%`, normalized))
	}

	if clientName := c.Query("clientName"); clientName != "" {
		query = query.Where("LOWER(client_name) LIKE ?", "%"+strings.ToLower(clientName)+"%")
	}

	var content []models.Content
	if err := query.Order("scheduled_time asc").Find(&content).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content retrieved successfully",
		"content": content,
		"count":   len(content),
	})
}

// GetContentByDate returns content whose scheduled instant falls
// within the requested calendar day.
func GetContentByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing required query parameter: date")
		return
	}

	target, err := utils.ParseDate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var events []models.Content
	if err := config.DB.
		Where("scheduled_time >= ? AND scheduled_time <= ?", utils.BeginningOfDay(target), utils.EndOfDay(target)).
		Order("scheduled_time asc").
		Find(&events).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events for the specified date")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Events retrieved successfully",
		"events":  events,
		"count":   len(events),
	})
}

// UpdateContent applies a partial patch. The scheduled instant is only
// re-derived when date and time are supplied together; a time-of-day
// without a date is dropped. The reminder flag is not touchable here.
func UpdateContent(c *gin.Context) {
	contentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	var input UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var content models.Content
	if err := config.DB.First(&content, "id = ?", contentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Content not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var errs []string

	if input.Date != nil {
		d, err := utils.ParseDate(*input.Date)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			content.Date = d
		}
	}
	if input.ContentType != nil {
		content.ContentType = *input.ContentType
	}
	if input.Caption != nil {
		content.Caption = *input.Caption
	}
	if input.ContentLink != nil {
		content.ContentLink = *input.ContentLink
	}
	if input.Recipients != nil {
		content.Recipients = utils.NormalizeEmails(*input.Recipients)
	}
	if input.ClientName != nil {
		content.ClientName = strings.TrimSpace(*input.ClientName)
	}

	if input.ScheduledTime != nil && input.Date != nil {
		hour, min, err := utils.ParseClock(*input.ScheduledTime)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			scheduled := utils.CombineDateTime(content.Date, hour, min)
			if !scheduled.After(time.Now()) {
				utils.RespondWithError(c, http.StatusBadRequest, "Scheduled time cannot be in the past")
				return
			}
			content.ScheduledTime = scheduled
		}
	}

	errs = append(errs, content.Validate()...)
	if len(errs) > 0 {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	if err := config.DB.Save(&content).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content updated successfully",
		"content": content,
	})
}

// DeleteContent removes a content item by ID
func DeleteContent(c *gin.Context) {
	contentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	var content models.Content
	if err := config.DB.First(&content, "id = ?", contentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Content not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&content).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content deleted successfully",
		"content": content,
	})
}
