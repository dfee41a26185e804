package dto

import "time"

type CreateJobPositionRequest struct {
	Title            string     `json:"title" validate:"required,min=2,max=255"`
	Description      string     `json:"description" validate:"omitempty,max=10000"`
	Department       string     `json:"department" validate:"omitempty,max=255"`
	Location         string     `json:"location" validate:"omitempty,max=255"`
	JobType          string     `json:"jobType" validate:"required,is-job-type"`
	ExperienceLevel  string     `json:"experienceLevel" validate:"required,is-experience-level"`
	SalaryMin        *float64   `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *float64   `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency   string     `json:"salaryCurrency,omitempty" validate:"omitempty,len=3"`
	SalaryPeriod     string     `json:"salaryPeriod,omitempty" validate:"omitempty,is-salary-period"`
	Status           string     `json:"status,omitempty" validate:"omitempty,is-job-status"`
	Responsibilities []string   `json:"responsibilities,omitempty" validate:"omitempty,dive,min=1"`
	Requirements     []string   `json:"requirements,omitempty" validate:"omitempty,dive,min=1"`
	Benefits         []string   `json:"benefits,omitempty" validate:"omitempty,dive,min=1"`
	RequiredSkills   []string   `json:"requiredSkills,omitempty" validate:"omitempty,dive,min=1,max=100"`
	PostedDate       *time.Time `json:"postedDate,omitempty"`
	ClosingDate      *time.Time `json:"closingDate,omitempty"`
}

// UpdateJobPositionRequest - частичное обновление, nil означает "не менять"
type UpdateJobPositionRequest struct {
	Title            *string    `json:"title,omitempty" validate:"omitempty,min=2,max=255"`
	Description      *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Department       *string    `json:"department,omitempty" validate:"omitempty,max=255"`
	Location         *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	JobType          *string    `json:"jobType,omitempty" validate:"omitempty,is-job-type"`
	ExperienceLevel  *string    `json:"experienceLevel,omitempty" validate:"omitempty,is-experience-level"`
	SalaryMin        *float64   `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *float64   `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency   *string    `json:"salaryCurrency,omitempty" validate:"omitempty,len=3"`
	SalaryPeriod     *string    `json:"salaryPeriod,omitempty" validate:"omitempty,is-salary-period"`
	Status           *string    `json:"status,omitempty" validate:"omitempty,is-job-status"`
	Responsibilities *[]string  `json:"responsibilities,omitempty"`
	Requirements     *[]string  `json:"requirements,omitempty"`
	Benefits         *[]string  `json:"benefits,omitempty"`
	RequiredSkills   *[]string  `json:"requiredSkills,omitempty"`
	PostedDate       *time.Time `json:"postedDate,omitempty"`
	ClosingDate      *time.Time `json:"closingDate,omitempty"`
}

type JobPositionListQuery struct {
	PaginationQuery
	Status          string `form:"status" validate:"omitempty,is-job-status"`
	Department      string `form:"department"`
	JobType         string `form:"jobType" validate:"omitempty,is-job-type"`
	ExperienceLevel string `form:"experienceLevel" validate:"omitempty,is-experience-level"`
	Search          string `form:"search" validate:"omitempty,max=255"`
}
