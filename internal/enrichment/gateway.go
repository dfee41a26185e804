package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyResume       = errors.New("resume has no extractable text")
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	ErrMalformedResponse = errors.New("malformed enrichment response")
	ErrMalformedResume   = errors.New("malformed resume document")
	ErrEnrichmentPanic   = errors.New("resume enrichment panicked")
)

// Enrichment - результат анализа резюме
type Enrichment struct {
	Summary         string    `json:"summary"`
	ExtractedSkills []string  `json:"extractedSkills"`
	AnalyzedAt      time.Time `json:"-"`
}

// Empty - нейтральный результат, который получает движок заявок при любой ошибке
func Empty() Enrichment {
	return Enrichment{Summary: "", ExtractedSkills: []string{}}
}

// IsEmpty - анализ ничего не дал
func (e Enrichment) IsEmpty() bool {
	return e.Summary == "" && len(e.ExtractedSkills) == 0
}

// Gateway - внешний шаг обогащения заявки по ссылке на резюме
type Gateway interface {
	Enrich(ctx context.Context, resumeRef string) (Enrichment, error)
}

// TextExtractor достает текст из резюме по ссылке (ключ хранилища или URL)
type TextExtractor interface {
	Extract(ctx context.Context, resumeRef string) (string, error)
}

// Analyzer превращает текст резюме в summary + навыки
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string) (Enrichment, error)
}

type gateway struct {
	extractor TextExtractor
	analyzer  Analyzer
	timeout   time.Duration
	now       func() time.Time
}

// NewGateway собирает шлюз: извлечение текста -> анализ. timeout ограничивает весь вызов.
func NewGateway(extractor TextExtractor, analyzer Analyzer, timeout time.Duration) Gateway {
	return &gateway{
		extractor: extractor,
		analyzer:  analyzer,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (g *gateway) Enrich(ctx context.Context, resumeRef string) (result Enrichment, err error) {
	// парсеры и SDK могут паниковать на битых данных, создание заявки от этого падать не должно
	defer func() {
		if r := recover(); r != nil {
			result, err = Empty(), fmt.Errorf("%w: %v", ErrEnrichmentPanic, r)
		}
	}()

	if strings.TrimSpace(resumeRef) == "" {
		return Empty(), ErrEmptyResume
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.extractor.Extract(ctx, resumeRef)
	if err != nil {
		return Empty(), fmt.Errorf("extract resume text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Empty(), ErrEmptyResume
	}

	result, err = g.analyzer.Analyze(ctx, text)
	if err != nil {
		return Empty(), fmt.Errorf("analyze resume: %w", err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Empty(), ctxErr
	}

	result.ExtractedSkills = dedupeSkills(result.ExtractedSkills)
	result.Summary = strings.TrimSpace(result.Summary)
	result.AnalyzedAt = g.now()
	return result, nil
}

// Disabled - шлюз при выключенном обогащении: всегда пустой результат без ошибки
type Disabled struct{}

func (Disabled) Enrich(ctx context.Context, resumeRef string) (Enrichment, error) {
	return Empty(), nil
}

func dedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
