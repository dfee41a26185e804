package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobPosition struct {
	BaseModel
	AuditFields

	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Department      string          `gorm:"type:varchar(255);index" json:"department"`
	Location        string          `gorm:"type:varchar(255)" json:"location"`
	JobType         JobType         `gorm:"type:varchar(32);not null" json:"jobType"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(32);not null" json:"experienceLevel"`

	SalaryMin      *float64     `json:"salaryMin,omitempty"`
	SalaryMax      *float64     `json:"salaryMax,omitempty"`
	SalaryCurrency string       `gorm:"type:varchar(8)" json:"salaryCurrency,omitempty"`
	SalaryPeriod   SalaryPeriod `gorm:"type:varchar(16)" json:"salaryPeriod,omitempty"`

	Status JobPositionStatus `gorm:"type:varchar(16);not null;default:'DRAFT';index" json:"status"`

	Responsibilities datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"responsibilities"`
	Requirements     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"requirements"`
	Benefits         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"benefits"`
	RequiredSkills   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"requiredSkills"`

	PostedDate  *time.Time `json:"postedDate,omitempty"`
	ClosingDate *time.Time `gorm:"index" json:"closingDate,omitempty"`
}

func (JobPosition) TableName() string {
	return "job_positions"
}

// AcceptsApplications - закрытые и удаленные вакансии не принимают заявки
func (j *JobPosition) AcceptsApplications() bool {
	return !j.IsDeleted && j.Status != JobPositionStatusClosed
}

// SalaryRangeValid - salaryMax >= salaryMin, если заданы оба
func (j *JobPosition) SalaryRangeValid() bool {
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return true
	}
	return *j.SalaryMax >= *j.SalaryMin
}
