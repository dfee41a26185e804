package dto

type CreateApplicationRequest struct {
	JobPositionID string           `json:"jobPositionId" validate:"required,uuid"`
	Candidate     CandidateDetails `json:"candidate"`
	ResumePath    string           `json:"resumePath,omitempty" validate:"omitempty,max=2048"`
	Skills        []string         `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Source        string           `json:"source,omitempty" validate:"omitempty,is-application-source"`
	Notes         string           `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// UpdateApplicationRequest - смена статуса и/или прочих полей
type UpdateApplicationRequest struct {
	Status          *string   `json:"status,omitempty" validate:"omitempty,is-application-status"`
	RejectionReason *string   `json:"rejectionReason,omitempty" validate:"omitempty,max=2000"`
	Notes           *string   `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Skills          *[]string `json:"skills,omitempty"`
	Source          *string   `json:"source,omitempty" validate:"omitempty,is-application-source"`
	ResumePath      *string   `json:"resumePath,omitempty" validate:"omitempty,max=2048"`
}

type ApplicationListQuery struct {
	PaginationQuery
	Status             string `form:"status" validate:"omitempty,is-application-status"`
	JobPositionID      string `form:"jobPositionId" validate:"omitempty,uuid"`
	CandidateProfileID string `form:"candidateProfileId" validate:"omitempty,uuid"`
	Source             string `form:"source" validate:"omitempty,is-application-source"`
}

// ResumeUploadResponse - resumePath передается дальше в CreateApplicationRequest
type ResumeUploadResponse struct {
	ResumePath  string `json:"resumePath"`
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
