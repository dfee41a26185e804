package dto

import "time"

type InterviewerInput struct {
	UserID   string `json:"userId" validate:"required"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role,omitempty" validate:"omitempty,max=128"`
	Feedback string `json:"feedback,omitempty" validate:"omitempty,max=5000"`
	Rating   *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type ScheduleInterviewRequest struct {
	ApplicationID string             `json:"applicationId" validate:"required,uuid"`
	JobPositionID string             `json:"jobPositionId" validate:"required,uuid"`
	Interviewers  []InterviewerInput `json:"interviewers" validate:"required,min=1,dive"`
	ScheduledDate time.Time          `json:"scheduledDate" validate:"required"`
	StartTime     string             `json:"startTime" validate:"required,hhmm"`
	EndTime       string             `json:"endTime" validate:"required,hhmm"`
	Type          string             `json:"type" validate:"required,is-interview-type"`
	Location      string             `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes         string             `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type UpdateInterviewRequest struct {
	Interviewers    *[]InterviewerInput `json:"interviewers,omitempty" validate:"omitempty,min=1,dive"`
	ScheduledDate   *time.Time          `json:"scheduledDate,omitempty"`
	StartTime       *string             `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime         *string             `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	Type            *string             `json:"type,omitempty" validate:"omitempty,is-interview-type"`
	Location        *string             `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes           *string             `json:"notes,omitempty" validate:"omitempty,max=5000"`
	OverallFeedback *string             `json:"overallFeedback,omitempty" validate:"omitempty,max=10000"`
	OverallRating   *int                `json:"overallRating,omitempty" validate:"omitempty,min=1,max=5"`
	Status          *string             `json:"status,omitempty" validate:"omitempty,is-interview-status"`
}

type InterviewListQuery struct {
	PaginationQuery
	ApplicationID string `form:"applicationId" validate:"omitempty,uuid"`
	JobPositionID string `form:"jobPositionId" validate:"omitempty,uuid"`
	Status        string `form:"status" validate:"omitempty,is-interview-status"`
	Type          string `form:"type" validate:"omitempty,is-interview-type"`
}
