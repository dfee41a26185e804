package dto

import (
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/algorithms"
)

type RankedApplicant struct {
	ApplicationID      string                    `json:"applicationId"`
	CandidateProfileID string                    `json:"candidateProfileId"`
	CandidateName      string                    `json:"candidateName"`
	Email              string                    `json:"email"`
	Status             string                    `json:"status"`
	AppliedDate        time.Time                 `json:"appliedDate"`
	MatchScore         int                       `json:"matchScore"`
	PreviousScore      int                       `json:"previousScore"`
	Breakdown          algorithms.MatchBreakdown `json:"breakdown"`
}

type RankingResponse struct {
	JobPositionID string            `json:"jobPositionId"`
	Title         string            `json:"title"`
	Total         int               `json:"total"`
	UpdatedScores int               `json:"updatedScores"`
	Applicants    []RankedApplicant `json:"applicants"`
}

type JobRecommendation struct {
	JobPositionID   string                    `json:"jobPositionId"`
	Title           string                    `json:"title"`
	Department      string                    `json:"department"`
	Location        string                    `json:"location"`
	JobType         string                    `json:"jobType"`
	ExperienceLevel string                    `json:"experienceLevel"`
	PostedDate      *time.Time                `json:"postedDate,omitempty"`
	MatchScore      int                       `json:"matchScore"`
	Breakdown       algorithms.MatchBreakdown `json:"breakdown"`
}

type RecommendationResponse struct {
	CandidateProfileID string              `json:"candidateProfileId"`
	Total              int                 `json:"total"`
	Jobs               []JobRecommendation `json:"jobs"`
}
