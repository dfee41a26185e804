package models

import (
	"time"

	"gorm.io/datatypes"
)

type Application struct {
	BaseModel
	AuditFields

	CandidateProfileID string            `gorm:"type:uuid;not null;index" json:"candidateProfileId"`
	CandidateProfile   *CandidateProfile `gorm:"foreignKey:CandidateProfileID" json:"candidateProfile,omitempty"`
	JobPositionID      string            `gorm:"type:uuid;not null;index" json:"jobPositionId"`
	JobPosition        *JobPosition      `gorm:"foreignKey:JobPositionID" json:"jobPosition,omitempty"`

	ResumePath string            `gorm:"type:text" json:"resumePath"`
	Status     ApplicationStatus `gorm:"type:varchar(32);not null;default:'APPLIED';index" json:"status"`

	AppliedDate     time.Time  `gorm:"not null;index" json:"appliedDate"`
	ScreeningDate   *time.Time `json:"screeningDate,omitempty"`
	InterviewDate   *time.Time `json:"interviewDate,omitempty"`
	HireDate        *time.Time `gorm:"index" json:"hireDate,omitempty"`
	RejectionDate   *time.Time `json:"rejectionDate,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejectionReason,omitempty"`

	Skills          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"skills"`
	ExperienceYears float64                     `gorm:"not null;default:0" json:"experienceYears"`
	MatchScore      int                         `gorm:"not null;default:0" json:"matchScore"`

	ExtractedSkills    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"extractedSkills"`
	ExtractedSummary   string                      `gorm:"type:text" json:"extractedSummary,omitempty"`
	ResumeAnalysisDate *time.Time                  `json:"resumeAnalysisDate,omitempty"`

	Source ApplicationSource `gorm:"type:varchar(32);index" json:"source,omitempty"`
	Notes  string            `gorm:"type:text" json:"notes,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
