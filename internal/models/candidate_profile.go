package models

import (
	"strings"

	"gorm.io/datatypes"
)

type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

type CandidateProfile struct {
	BaseModel
	AuditFields

	FirstName string `gorm:"type:varchar(128);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(128)" json:"lastName"`
	// Уникальность lower(email) и phone среди неудаленных - частичные индексы в миграции
	Email string  `gorm:"type:varchar(255);not null" json:"email"`
	Phone *string `gorm:"type:varchar(32)" json:"phone,omitempty"`

	Skills            datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"skills"`
	Experience        datatypes.JSONSlice[ExperienceEntry] `gorm:"type:jsonb" json:"experience"`
	Education         datatypes.JSONSlice[EducationEntry]  `gorm:"type:jsonb" json:"education"`
	PreferredJobTypes datatypes.JSONSlice[JobType]         `gorm:"type:jsonb" json:"preferredJobTypes"`
	PreferredTitles   datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"preferredTitles"`

	OverallExperienceYears float64  `gorm:"not null;default:0" json:"overallExperienceYears"`
	Location               string   `gorm:"type:varchar(255)" json:"location"`
	ExpectedSalary         *float64 `json:"expectedSalary,omitempty"`
	Currency               string   `gorm:"type:varchar(8)" json:"currency,omitempty"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}

func (c *CandidateProfile) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeEmail - email сравнивается без учета регистра
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
