package models

import (
	"time"

	"gorm.io/datatypes"
)

type Interviewer struct {
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Feedback string `json:"feedback,omitempty"`
	Rating   *int   `json:"rating,omitempty"`
}

type Interview struct {
	BaseModel
	AuditFields

	ApplicationID string       `gorm:"type:uuid;not null;index" json:"applicationId"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	JobPositionID string       `gorm:"type:uuid;not null;index" json:"jobPositionId"`

	Interviewers  datatypes.JSONSlice[Interviewer] `gorm:"type:jsonb;not null" json:"interviewers"`
	ScheduledDate time.Time                        `gorm:"not null;index" json:"scheduledDate"`
	StartTime     string                           `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime       string                           `gorm:"type:varchar(5);not null" json:"endTime"`
	Type          InterviewType                    `gorm:"type:varchar(16);not null" json:"type"`
	Location      string                           `gorm:"type:varchar(255)" json:"location,omitempty"`
	Notes         string                           `gorm:"type:text" json:"notes,omitempty"`

	OverallFeedback string          `gorm:"type:text" json:"overallFeedback,omitempty"`
	OverallRating   *int            `json:"overallRating,omitempty"`
	Status          InterviewStatus `gorm:"type:varchar(16);not null;default:'Scheduled';index" json:"status"`
}

func (Interview) TableName() string {
	return "interviews"
}
