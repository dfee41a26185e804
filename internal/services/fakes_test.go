package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/enrichment"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/email"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore - in-memory хранилище для тестов сервисов; db всегда nil
type memStore struct {
	mu         sync.Mutex
	jobs       map[string]*models.JobPosition
	candidates map[string]*models.CandidateProfile
	apps       map[string]*models.Application
	interviews map[string]*models.Interview

	scoreWrites int
}

func newMemStore() *memStore {
	return &memStore{
		jobs:       map[string]*models.JobPosition{},
		candidates: map[string]*models.CandidateProfile{},
		apps:       map[string]*models.Application{},
		interviews: map[string]*models.Interview{},
	}
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// --- job positions ---

type memJobRepo struct{ s *memStore }

func (r memJobRepo) Create(ctx context.Context, db *gorm.DB, job *models.JobPosition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&job.ID)
	cp := *job
	r.s.jobs[job.ID] = &cp
	return nil
}

func (r memJobRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error) {
	job, err := r.FindByIDIncludingDeleted(ctx, db, id)
	if err != nil || job.IsDeleted {
		return nil, repositories.ErrJobPositionNotFound
	}
	return job, nil
}

func (r memJobRepo) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repositories.ErrJobPositionNotFound
	}
	cp := *job
	return &cp, nil
}

func (r memJobRepo) List(ctx context.Context, db *gorm.DB, filter repositories.JobPositionFilter, page repositories.PageQuery) ([]models.JobPosition, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.JobPosition
	for _, j := range r.s.jobs {
		if j.IsDeleted || (filter.Status != "" && j.Status != filter.Status) {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	total := int64(len(out))
	start := page.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + page.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r memJobRepo) FindActive(ctx context.Context, db *gorm.DB) ([]models.JobPosition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.JobPosition
	for _, j := range r.s.jobs {
		if !j.IsDeleted && j.Status == models.JobPositionStatusActive {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r memJobRepo) Update(ctx context.Context, db *gorm.DB, job *models.JobPosition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *job
	r.s.jobs[job.ID] = &cp
	return nil
}

func (r memJobRepo) HardDelete(ctx context.Context, db *gorm.DB, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return repositories.ErrJobPositionNotFound
	}
	for _, a := range r.s.apps {
		if a.JobPositionID == id {
			return repositories.ErrReferenced
		}
	}
	delete(r.s.jobs, id)
	return nil
}

func (r memJobRepo) CloseExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, j := range r.s.jobs {
		if !j.IsDeleted && (j.Status == models.JobPositionStatusActive || j.Status == models.JobPositionStatusOnHold) && j.ClosingDate != nil && j.ClosingDate.Before(now) {
			j.Status = models.JobPositionStatusClosed
			n++
		}
	}
	return n, nil
}

// --- candidates ---

type memCandidateRepo struct {
	s *memStore
	// beforeCreate вызывается перед вставкой: так тесты имитируют параллельное создание
	beforeCreate func()
}

func (r memCandidateRepo) Create(ctx context.Context, db *gorm.DB, c *models.CandidateProfile) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.candidates {
		if other.IsDeleted {
			continue
		}
		if strings.EqualFold(other.Email, c.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	ensureID(&c.ID)
	cp := *c
	r.s.candidates[c.ID] = &cp
	return nil
}

func (r memCandidateRepo) find(match func(*models.CandidateProfile) bool) (*models.CandidateProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.candidates {
		if !c.IsDeleted && match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCandidateProfileNotFound
}

func (r memCandidateRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.CandidateProfile, error) {
	return r.find(func(c *models.CandidateProfile) bool { return c.ID == id })
}

func (r memCandidateRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*models.CandidateProfile, error) {
	return r.find(func(c *models.CandidateProfile) bool { return strings.EqualFold(c.Email, strings.TrimSpace(email)) })
}

func (r memCandidateRepo) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*models.CandidateProfile, error) {
	return r.find(func(c *models.CandidateProfile) bool { return c.Phone != nil && *c.Phone == phone })
}

func (r memCandidateRepo) List(ctx context.Context, db *gorm.DB, filter repositories.CandidateProfileFilter, page repositories.PageQuery) ([]models.CandidateProfile, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.CandidateProfile
	for _, c := range r.s.candidates {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r memCandidateRepo) Update(ctx context.Context, db *gorm.DB, c *models.CandidateProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.candidates[c.ID] = &cp
	return nil
}

// --- applications ---

type memAppRepo struct {
	s *memStore
	// skipPrecheck имитирует гонку: pre-check ничего не находит, решает индекс
	skipPrecheck bool
	// beforeUpdate вызывается перед условной записью: так тесты вклиниваются между чтением и записью
	beforeUpdate func(stored *models.Application)
}

func (r memAppRepo) Create(ctx context.Context, db *gorm.DB, a *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.apps {
		if !other.IsDeleted && other.CandidateProfileID == a.CandidateProfileID && other.JobPositionID == a.JobPositionID {
			return repositories.ErrDuplicateKey
		}
	}
	ensureID(&a.ID)
	cp := *a
	cp.CandidateProfile, cp.JobPosition = nil, nil
	r.s.apps[a.ID] = &cp
	return nil
}

func (r memAppRepo) withRelations(a *models.Application) *models.Application {
	cp := *a
	if c, ok := r.s.candidates[a.CandidateProfileID]; ok {
		cc := *c
		cp.CandidateProfile = &cc
	}
	if j, ok := r.s.jobs[a.JobPositionID]; ok {
		jc := *j
		cp.JobPosition = &jc
	}
	return &cp
}

func (r memAppRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok || a.IsDeleted {
		return nil, repositories.ErrApplicationNotFound
	}
	return r.withRelations(a), nil
}

func (r memAppRepo) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAppRepo) FindActiveByCandidateAndJob(ctx context.Context, db *gorm.DB, candidateID, jobPositionID string) (*models.Application, error) {
	if r.skipPrecheck {
		return nil, repositories.ErrApplicationNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.apps {
		if !a.IsDeleted && a.CandidateProfileID == candidateID && a.JobPositionID == jobPositionID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r memAppRepo) FindByJobWithCandidates(ctx context.Context, db *gorm.DB, jobPositionID string) ([]models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Application
	for _, a := range r.s.apps {
		if !a.IsDeleted && a.JobPositionID == jobPositionID {
			out = append(out, *r.withRelations(a))
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].AppliedDate.Equal(out[k].AppliedDate) {
			return out[i].AppliedDate.Before(out[k].AppliedDate)
		}
		return out[i].ID < out[k].ID
	})
	return out, nil
}

func (r memAppRepo) List(ctx context.Context, db *gorm.DB, filter repositories.ApplicationFilter, page repositories.PageQuery) ([]models.Application, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Application
	for _, a := range r.s.apps {
		if !a.IsDeleted && (filter.JobPositionID == "" || a.JobPositionID == filter.JobPositionID) {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r memAppRepo) Update(ctx context.Context, db *gorm.DB, a *models.Application, expectedStatus models.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.apps[a.ID]
	if !ok {
		return repositories.ErrApplicationStatusChanged
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(stored)
	}
	if stored.Status != expectedStatus {
		return repositories.ErrApplicationStatusChanged
	}
	cp := *a
	cp.CandidateProfile, cp.JobPosition = nil, nil
	// оценку и анализ резюме условная запись не трогает
	cp.MatchScore = stored.MatchScore
	cp.ExtractedSkills = stored.ExtractedSkills
	cp.ExtractedSummary = stored.ExtractedSummary
	cp.ResumeAnalysisDate = stored.ResumeAnalysisDate
	r.s.apps[a.ID] = &cp
	return nil
}

func (r memAppRepo) UpdateMatchScore(ctx context.Context, db *gorm.DB, id string, score int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok || a.MatchScore == score {
		return false, nil
	}
	a.MatchScore = score
	r.s.scoreWrites++
	return true, nil
}

// --- interviews ---

type memInterviewRepo struct{ s *memStore }

func (r memInterviewRepo) Create(ctx context.Context, db *gorm.DB, iv *models.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&iv.ID)
	cp := *iv
	r.s.interviews[iv.ID] = &cp
	return nil
}

func (r memInterviewRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error) {
	iv, err := r.FindByIDIncludingDeleted(ctx, db, id)
	if err != nil || iv.IsDeleted {
		return nil, repositories.ErrInterviewNotFound
	}
	return iv, nil
}

func (r memInterviewRepo) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	iv, ok := r.s.interviews[id]
	if !ok {
		return nil, repositories.ErrInterviewNotFound
	}
	cp := *iv
	return &cp, nil
}

func (r memInterviewRepo) List(ctx context.Context, db *gorm.DB, filter repositories.InterviewFilter, page repositories.PageQuery) ([]models.Interview, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Interview
	for _, iv := range r.s.interviews {
		if !iv.IsDeleted {
			out = append(out, *iv)
		}
	}
	return out, int64(len(out)), nil
}

func (r memInterviewRepo) Update(ctx context.Context, db *gorm.DB, iv *models.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *iv
	r.s.interviews[iv.ID] = &cp
	return nil
}

func (r memInterviewRepo) HardDelete(ctx context.Context, db *gorm.DB, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.interviews[id]; !ok {
		return repositories.ErrInterviewNotFound
	}
	delete(r.s.interviews, id)
	return nil
}

// --- collaborators ---

type stubGateway struct {
	result enrichment.Enrichment
	err    error
	calls  int
}

func (g *stubGateway) Enrich(ctx context.Context, ref string) (enrichment.Enrichment, error) {
	g.calls++
	if g.err != nil {
		return enrichment.Empty(), g.err
	}
	return g.result, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e.To...)
	return m.err
}

func (m *recordingMailer) SendTemplate(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	return m.Send(ctx, &email.Email{To: to, Subject: subject})
}

func (m *recordingMailer) Validate() error { return nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
