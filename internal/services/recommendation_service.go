package services

import (
	"context"
	"sort"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/algorithms"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"

	"gorm.io/gorm"
)

type RecommendationService interface {
	RankApplicantsForJob(ctx context.Context, db *gorm.DB, jobPositionID string) (*dto.RankingResponse, error)
	RecommendJobsForCandidate(ctx context.Context, db *gorm.DB, candidateProfileID string) (*dto.RecommendationResponse, error)
}

type recommendationService struct {
	jobRepo       repositories.JobPositionRepository
	appRepo       repositories.ApplicationRepository
	candidateRepo repositories.CandidateProfileRepository
}

func NewRecommendationService(
	jobRepo repositories.JobPositionRepository,
	appRepo repositories.ApplicationRepository,
	candidateRepo repositories.CandidateProfileRepository,
) RecommendationService {
	return &recommendationService{
		jobRepo:       jobRepo,
		appRepo:       appRepo,
		candidateRepo: candidateRepo,
	}
}

// RankApplicantsForJob пересчитывает оценки всех заявок вакансии.
// Каждая измененная оценка пишется отдельным UPDATE; при отмене контекста
// уже записанные оценки остаются корректными.
func (s *recommendationService) RankApplicantsForJob(ctx context.Context, db *gorm.DB, jobPositionID string) (*dto.RankingResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, db, jobPositionID)
	if err != nil {
		return nil, mapJobPositionError(err)
	}
	apps, err := s.appRepo.FindByJobWithCandidates(ctx, db, job.ID)
	if err != nil {
		return nil, storeError(err)
	}

	ranked := make([]dto.RankedApplicant, 0, len(apps))
	updated := 0
	for i := range apps {
		app := &apps[i]
		breakdown := algorithms.Breakdown(job, app.CandidateProfile, app)

		if breakdown.Score != app.MatchScore {
			if err := ctx.Err(); err != nil {
				return nil, storeError(err)
			}
			written, err := s.appRepo.UpdateMatchScore(ctx, db, app.ID, breakdown.Score)
			if err != nil {
				return nil, storeError(err)
			}
			if written {
				updated++
			}
		}

		entry := dto.RankedApplicant{
			ApplicationID:      app.ID,
			CandidateProfileID: app.CandidateProfileID,
			Status:             string(app.Status),
			AppliedDate:        app.AppliedDate,
			MatchScore:         breakdown.Score,
			PreviousScore:      app.MatchScore,
			Breakdown:          breakdown,
		}
		if app.CandidateProfile != nil {
			entry.CandidateName = app.CandidateProfile.FullName()
			entry.Email = app.CandidateProfile.Email
		}
		ranked = append(ranked, entry)
	}

	SortRankedApplicants(ranked)

	logger.CtxInfo(ctx, "Applicants ranked",
		"job_position_id", job.ID,
		"applicants", len(ranked),
		"updated_scores", updated,
	)
	return &dto.RankingResponse{
		JobPositionID: job.ID,
		Title:         job.Title,
		Total:         len(ranked),
		UpdatedScores: updated,
		Applicants:    ranked,
	}, nil
}

// SortRankedApplicants: score по убыванию, затем appliedDate по возрастанию, затем id
func SortRankedApplicants(ranked []dto.RankedApplicant) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if !a.AppliedDate.Equal(b.AppliedDate) {
			return a.AppliedDate.Before(b.AppliedDate)
		}
		return a.ApplicationID < b.ApplicationID
	})
}

func (s *recommendationService) RecommendJobsForCandidate(ctx context.Context, db *gorm.DB, candidateProfileID string) (*dto.RecommendationResponse, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, db, candidateProfileID)
	if err != nil {
		return nil, mapCandidateError(err)
	}
	jobs, err := s.jobRepo.FindActive(ctx, db)
	if err != nil {
		return nil, storeError(err)
	}

	recs := make([]dto.JobRecommendation, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		breakdown := algorithms.Breakdown(job, candidate, nil)
		recs = append(recs, dto.JobRecommendation{
			JobPositionID:   job.ID,
			Title:           job.Title,
			Department:      job.Department,
			Location:        job.Location,
			JobType:         string(job.JobType),
			ExperienceLevel: string(job.ExperienceLevel),
			PostedDate:      job.PostedDate,
			MatchScore:      breakdown.Score,
			Breakdown:       breakdown,
		})
	}
	SortJobRecommendations(recs)

	return &dto.RecommendationResponse{
		CandidateProfileID: candidate.ID,
		Total:              len(recs),
		Jobs:               recs,
	}, nil
}

// SortJobRecommendations: score по убыванию, затем более свежие postedDate, затем id
func SortJobRecommendations(recs []dto.JobRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		switch {
		case a.PostedDate != nil && b.PostedDate != nil && !a.PostedDate.Equal(*b.PostedDate):
			return a.PostedDate.After(*b.PostedDate)
		case a.PostedDate != nil && b.PostedDate == nil:
			return true
		case a.PostedDate == nil && b.PostedDate != nil:
			return false
		}
		return a.JobPositionID < b.JobPositionID
	})
}
