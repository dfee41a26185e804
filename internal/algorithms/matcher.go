package algorithms

import (
	"math"
	"strings"
	"unicode"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Веса текущего релиза. Менять только вместе с пересчетом всех оценок,
// иначе старые и новые matchScore несравнимы.
const (
	EnrichmentSkillWeight = 80.0 // доля навыков при оценке только по данным резюме

	SkillPointsPerMatch  = 10.0
	ExperienceBandPoints = 20.0
	LocationMatchPoints  = 5.0
	JobTypeOrTitlePoints = 5.0
	MaxScore             = 100.0
	seniorMinYears       = 5.0
	midMinYears          = 2.0
	executiveMinYears    = 10.0
)

// MatchBreakdown - из чего сложилась оценка
type MatchBreakdown struct {
	Score           int      `json:"score"`
	MatchedSkills   []string `json:"matchedSkills"`
	SkillPoints     float64  `json:"skillPoints"`
	ExperiencePts   float64  `json:"experiencePoints"`
	LocationPts     float64  `json:"locationPoints"`
	JobTypeTitlePts float64  `json:"jobTypeTitlePoints"`
	Reasons         []string `json:"reasons"`
}

// EnrichmentScore считает оценку только по навыкам, извлеченным из резюме:
// доля требуемых навыков вакансии, найденных в extracted, * 80.
func EnrichmentScore(job *models.JobPosition, extracted []string) int {
	if job == nil {
		return 0
	}
	required := uniqueNormalized(job.RequiredSkills)
	if len(required) == 0 {
		return 0
	}
	have := skillSet(extracted)

	matched := 0
	for _, skill := range required {
		if have[skill] {
			matched++
		}
	}
	return sanitize(float64(matched) / float64(len(required)) * EnrichmentSkillWeight)
}

// Score - полная оценка для ранжирования (0-100).
// application может быть nil (рекомендации вакансий кандидату).
func Score(job *models.JobPosition, candidate *models.CandidateProfile, application *models.Application) int {
	return Breakdown(job, candidate, application).Score
}

// JobSuitability - оценка вакансии для кандидата без конкретной заявки
func JobSuitability(job *models.JobPosition, candidate *models.CandidateProfile) int {
	return Score(job, candidate, nil)
}

// Breakdown - то же, что Score, но с разбивкой по компонентам
func Breakdown(job *models.JobPosition, candidate *models.CandidateProfile, application *models.Application) MatchBreakdown {
	result := MatchBreakdown{MatchedSkills: []string{}, Reasons: []string{}}
	if job == nil {
		return result
	}

	// Skills: 10 очков за каждый требуемый навык из объединения
	// навыков профиля, заявки и извлеченных из резюме
	var pool []string
	if candidate != nil {
		pool = append(pool, candidate.Skills...)
	}
	if application != nil {
		pool = append(pool, application.Skills...)
		pool = append(pool, application.ExtractedSkills...)
	}
	have := skillSet(pool)
	for _, skill := range uniqueNormalized(job.RequiredSkills) {
		if have[skill] {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		}
	}
	result.SkillPoints = float64(len(result.MatchedSkills)) * SkillPointsPerMatch
	if len(result.MatchedSkills) > 0 {
		result.Reasons = append(result.Reasons, "Matching skills")
	}

	var years float64
	if candidate != nil {
		years = candidate.OverallExperienceYears
	} else if application != nil {
		years = application.ExperienceYears
	}
	if ExperienceFits(job.ExperienceLevel, years) {
		result.ExperiencePts = ExperienceBandPoints
		result.Reasons = append(result.Reasons, "Experience matches level")
	}

	if candidate != nil {
		if job.Location != "" && NormalizeSkill(job.Location) == NormalizeSkill(candidate.Location) {
			result.LocationPts = LocationMatchPoints
			result.Reasons = append(result.Reasons, "Same location")
		}
		if jobTypeOrTitleMatches(job, candidate) {
			result.JobTypeTitlePts = JobTypeOrTitlePoints
			result.Reasons = append(result.Reasons, "Preferred job type or title")
		}
	}

	total := result.SkillPoints + result.ExperiencePts + result.LocationPts + result.JobTypeTitlePts
	result.Score = sanitize(total)
	return result
}

// ExperienceFits - попадание в диапазон уровня, без частичных баллов между уровнями.
// SENIOR >= 5, MID_LEVEL [2,5), ENTRY_LEVEL < 2, EXECUTIVE >= 10.
func ExperienceFits(level models.ExperienceLevel, years float64) bool {
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return false
	}
	switch level {
	case models.ExperienceLevelSenior:
		return years >= seniorMinYears
	case models.ExperienceLevelMid:
		return years >= midMinYears && years < seniorMinYears
	case models.ExperienceLevelEntry:
		return years < midMinYears
	case models.ExperienceLevelExecutive:
		return years >= executiveMinYears
	default:
		return false
	}
}

func jobTypeOrTitleMatches(job *models.JobPosition, candidate *models.CandidateProfile) bool {
	for _, t := range candidate.PreferredJobTypes {
		if t == job.JobType {
			return true
		}
	}
	title := NormalizeSkill(job.Title)
	if title == "" {
		return false
	}
	for _, preferred := range candidate.PreferredTitles {
		p := NormalizeSkill(preferred)
		if p != "" && (p == title || strings.Contains(title, p)) {
			return true
		}
	}
	return false
}

// sanitize: clamp [0,100], округление, NaN/Inf -> 0
func sanitize(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return int(MaxScore)
	}
	return int(v)
}

// NormalizeSkill: нижний регистр, без диакритики, схлопнутые пробелы.
// "  Node.JS " -> "node.js", "Café" -> "cafe"
func NormalizeSkill(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	// Chain хранит состояние, поэтому создается на каждый вызов
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if n := NormalizeSkill(s); n != "" {
			set[n] = true
		}
	}
	return set
}

func uniqueNormalized(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
