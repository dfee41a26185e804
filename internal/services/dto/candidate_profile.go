package dto

type ExperienceEntry struct {
	Company     string `json:"company" validate:"required,max=255"`
	Title       string `json:"title" validate:"required,max=255"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type EducationEntry struct {
	Institution  string `json:"institution" validate:"required,max=255"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear,omitempty" validate:"omitempty,min=1900,max=2100"`
	EndYear      int    `json:"endYear,omitempty" validate:"omitempty,min=1900,max=2100"`
}

// CandidateDetails - данные кандидата; используются и в профиле, и внутри заявки
type CandidateDetails struct {
	FirstName              string            `json:"firstName" validate:"required,max=128"`
	LastName               string            `json:"lastName" validate:"omitempty,max=128"`
	Email                  string            `json:"email" validate:"required,email"`
	Phone                  string            `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	Skills                 []string          `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Experience             []ExperienceEntry `json:"experience,omitempty" validate:"omitempty,dive"`
	Education              []EducationEntry  `json:"education,omitempty" validate:"omitempty,dive"`
	PreferredJobTypes      []string          `json:"preferredJobTypes,omitempty" validate:"omitempty,dive,is-job-type"`
	PreferredTitles        []string          `json:"preferredTitles,omitempty" validate:"omitempty,dive,min=1"`
	OverallExperienceYears float64           `json:"overallExperienceYears" validate:"min=0,max=80"`
	Location               string            `json:"location,omitempty" validate:"omitempty,max=255"`
	ExpectedSalary         *float64          `json:"expectedSalary,omitempty" validate:"omitempty,min=0"`
	Currency               string            `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type UpdateCandidateProfileRequest struct {
	FirstName              *string            `json:"firstName,omitempty" validate:"omitempty,max=128"`
	LastName               *string            `json:"lastName,omitempty" validate:"omitempty,max=128"`
	Email                  *string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone                  *string            `json:"phone,omitempty" validate:"omitempty,max=32"`
	Skills                 *[]string          `json:"skills,omitempty"`
	Experience             *[]ExperienceEntry `json:"experience,omitempty" validate:"omitempty,dive"`
	Education              *[]EducationEntry  `json:"education,omitempty" validate:"omitempty,dive"`
	PreferredJobTypes      *[]string          `json:"preferredJobTypes,omitempty" validate:"omitempty,dive,is-job-type"`
	PreferredTitles        *[]string          `json:"preferredTitles,omitempty"`
	OverallExperienceYears *float64           `json:"overallExperienceYears,omitempty" validate:"omitempty,min=0,max=80"`
	Location               *string            `json:"location,omitempty" validate:"omitempty,max=255"`
	ExpectedSalary         *float64           `json:"expectedSalary,omitempty" validate:"omitempty,min=0"`
	Currency               *string            `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type CandidateProfileListQuery struct {
	PaginationQuery
	Search   string `form:"search" validate:"omitempty,max=255"`
	Location string `form:"location"`
	Skill    string `form:"skill"`
}
