package enrichment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/storage"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

const maxResumeBytes = 20 * 1024 * 1024

// ErrResumeHostNotAllowed - URL резюме указывает на хост вне белого списка
var ErrResumeHostNotAllowed = errors.New("resume host is not allowed")

// ResumeExtractor читает резюме из хранилища (или по http(s) URL) и достает текст.
// По URL скачиваются только резюме с хостов из allowedHosts; пустой список запрещает URL целиком.
type ResumeExtractor struct {
	storage      storage.Storage
	httpClient   *http.Client
	allowedHosts map[string]bool
}

func NewResumeExtractor(store storage.Storage, httpClient *http.Client, allowedHosts []string) *ResumeExtractor {
	e := &ResumeExtractor{storage: store, allowedHosts: make(map[string]bool, len(allowedHosts))}
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			e.allowedHosts[h] = true
		}
	}

	client := &http.Client{}
	if httpClient != nil {
		*client = *httpClient
	}
	// редирект не должен уводить на хост вне списка
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return errors.New("too many redirects")
		}
		return e.checkURL(req.URL)
	}
	e.httpClient = client
	return e
}

func (e *ResumeExtractor) checkURL(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrResumeHostNotAllowed, u.Scheme)
	}
	if !e.allowedHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("%w: %s", ErrResumeHostNotAllowed, u.Hostname())
	}
	return nil
}

func (e *ResumeExtractor) Extract(ctx context.Context, resumeRef string) (string, error) {
	data, err := e.fetch(ctx, resumeRef)
	if err != nil {
		return "", err
	}
	return ExtractText(resumeRef, data)
}

func (e *ResumeExtractor) fetch(ctx context.Context, ref string) ([]byte, error) {
	var body io.ReadCloser

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid resume URL: %w", err)
		}
		if err := e.checkURL(u); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := e.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download resume: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("download resume: unexpected status %d", resp.StatusCode)
		}
		body = resp.Body
	} else {
		if e.storage == nil {
			return nil, fmt.Errorf("no storage configured for resume %q", ref)
		}
		rc, err := e.storage.Get(ctx, ref)
		if err != nil {
			return nil, err
		}
		body = rc
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxResumeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if len(data) > maxResumeBytes {
		return nil, fmt.Errorf("resume exceeds %d bytes", maxResumeBytes)
	}
	return data, nil
}

// ExtractText выбирает парсер по расширению: .pdf, .docx, .txt/.md
func ExtractText(name string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(strings.SplitN(name, "?", 2)[0]))

	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to parse docx: %w", err)
		}
		return CleanText(text), nil
	case ".txt", ".md", "":
		return CleanText(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf паникует на битых объектах вместо возврата ошибки
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrMalformedResume, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// битая страница не должна ронять весь документ
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	text = CleanText(sb.String())
	if text == "" {
		return "", ErrEmptyResume
	}
	return text, nil
}

// CleanText убирает пустые строки и крайние пробелы
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
