package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"
)

const maxPromptChars = 30000

const analyzePrompt = `You are an HR assistant. Read the resume below and respond with JSON only, no markdown:
{"summary": "<2-3 sentence professional summary>", "extractedSkills": ["<skill>", ...]}
List concrete technical and professional skills as short names (e.g. "Go", "PostgreSQL", "Project Management").

RESUME:
%s`

// GeminiAnalyzer - Analyzer поверх Google Gemini
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAnalyzer{client: client, model: model}, nil
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, resumeText string) (Enrichment, error) {
	resumeText = TruncateText(resumeText, maxPromptChars)

	temperature := float32(0.1)
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(fmt.Sprintf(analyzePrompt, resumeText)), &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Empty(), fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return Empty(), fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}

	return ParseResponse(resp.Text())
}

// TruncateText обрезает текст до maxBytes байт, не разрывая многобайтовую руну
func TruncateText(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// ParseResponse разбирает JSON ответа модели; допускает обертку ```json ... ```
func ParseResponse(raw string) (Enrichment, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	var payload struct {
		Summary         string   `json:"summary"`
		ExtractedSkills []string `json:"extractedSkills"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Empty(), fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.ExtractedSkills == nil {
		payload.ExtractedSkills = []string{}
	}

	return Enrichment{
		Summary:         payload.Summary,
		ExtractedSkills: payload.ExtractedSkills,
	}, nil
}
