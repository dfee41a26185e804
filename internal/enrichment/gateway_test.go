package enrichment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(ctx context.Context, ref string) (string, error) {
	return s.text, s.err
}

type stubAnalyzer struct {
	result Enrichment
	err    error
	delay  time.Duration
}

func (s stubAnalyzer) Analyze(ctx context.Context, text string) (Enrichment, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Empty(), ctx.Err()
		}
	}
	return s.result, s.err
}

func TestGateway_Success(t *testing.T) {
	g := NewGateway(
		stubExtractor{text: "Go developer"},
		stubAnalyzer{result: Enrichment{Summary: " Backend dev ", ExtractedSkills: []string{"Go", "go", " SQL ", ""}}},
		time.Second,
	)

	res, err := g.Enrich(context.Background(), "resumes/cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Backend dev", res.Summary)
	assert.Equal(t, []string{"Go", "SQL"}, res.ExtractedSkills)
	assert.False(t, res.AnalyzedAt.IsZero())
}

func TestGateway_FailuresReturnEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		g    Gateway
		ref  string
	}{
		{"empty ref", NewGateway(stubExtractor{text: "x"}, stubAnalyzer{}, time.Second), ""},
		{"extract error", NewGateway(stubExtractor{err: storage.ErrObjectNotFound}, stubAnalyzer{}, time.Second), "cv.pdf"},
		{"blank text", NewGateway(stubExtractor{text: "  \n"}, stubAnalyzer{}, time.Second), "cv.pdf"},
		{"provider error", NewGateway(stubExtractor{text: "x"}, stubAnalyzer{err: errors.New("503")}, time.Second), "cv.pdf"},
		{"timeout", NewGateway(stubExtractor{text: "x"}, stubAnalyzer{delay: time.Second}, 20*time.Millisecond), "cv.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.g.Enrich(context.Background(), tt.ref)
			assert.Error(t, err)
			assert.True(t, res.IsEmpty())
			assert.NotNil(t, res.ExtractedSkills)
		})
	}
}

func TestDisabledGateway(t *testing.T) {
	res, err := Disabled{}.Enrich(context.Background(), "cv.pdf")
	assert.NoError(t, err)
	assert.True(t, res.IsEmpty())
}

func TestParseResponse(t *testing.T) {
	res, err := ParseResponse("```json\n{\"summary\":\"Data engineer\",\"extractedSkills\":[\"Python\",\"Airflow\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Data engineer", res.Summary)
	assert.Equal(t, []string{"Python", "Airflow"}, res.ExtractedSkills)

	res, err = ParseResponse(`Sure! {"summary":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.ExtractedSkills)

	_, err = ParseResponse("not json at all")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText("resumes/cv.txt", []byte("  Go\n\n  Kubernetes  \n"))
	require.NoError(t, err)
	assert.Equal(t, "Go\nKubernetes", text)

	_, err = ExtractText("cv.exe", []byte("MZ"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractText("cv.pdf", []byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestResumeExtractor_FromStorage(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "resumes/jane.txt", strings.NewReader("Go\nSQL"), "text/plain"))

	ex := NewResumeExtractor(store, nil, nil)
	text, err := ex.Extract(context.Background(), "resumes/jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go\nSQL", text)

	_, err = ex.Extract(context.Background(), "resumes/missing.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(ctx context.Context, ref string) (string, error) {
	panic("unexpected delimiter ')'")
}

// buildPDF собирает PDF с корректными xref и trailer вокруг переданных тел объектов
func buildPDF(objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func malformedPDFs() map[string][]byte {
	return map[string][]byte{
		"unterminated catalog": buildPDF("<< /Type /Catalog /Pages 2 0 R", "<< /Type /Pages /Kids [] /Count 0 >>"),
		"stray delimiters":     buildPDF(") ] >> garbage", "<< /Type /Pages /Kids [] /Count 0 >>"),
	}
}

func TestExtractText_MalformedPDF(t *testing.T) {
	for name, data := range malformedPDFs() {
		t.Run(name, func(t *testing.T) {
			var err error
			assert.NotPanics(t, func() {
				_, err = ExtractText("resumes/cv.pdf", data)
			})
			assert.Error(t, err)
		})
	}
}

func TestGateway_RecoversFromPanic(t *testing.T) {
	g := NewGateway(panickingExtractor{}, stubAnalyzer{}, time.Second)

	var (
		res Enrichment
		err error
	)
	assert.NotPanics(t, func() {
		res, err = g.Enrich(context.Background(), "resumes/cv.pdf")
	})
	assert.ErrorIs(t, err, ErrEnrichmentPanic)
	assert.True(t, res.IsEmpty())
	assert.NotNil(t, res.ExtractedSkills)
}

func TestGateway_MalformedStoredPDF(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	g := NewGateway(NewResumeExtractor(store, nil, nil), stubAnalyzer{result: Enrichment{Summary: "never reached"}}, time.Second)

	for name, data := range malformedPDFs() {
		t.Run(name, func(t *testing.T) {
			key := "resumes/" + strings.ReplaceAll(name, " ", "-") + ".pdf"
			require.NoError(t, store.Save(context.Background(), key, bytes.NewReader(data), "application/pdf"))

			var res Enrichment
			assert.NotPanics(t, func() {
				res, err = g.Enrich(context.Background(), key)
			})
			assert.Error(t, err)
			assert.True(t, res.IsEmpty())
		})
	}
}

func TestTruncateText_KeepsRunesWhole(t *testing.T) {
	text := "Опыт: Go" // кириллица - по 2 байта на руну

	assert.Equal(t, text, TruncateText(text, 100))
	assert.Equal(t, "О", TruncateText(text, 3))
	assert.Equal(t, "Оп", TruncateText(text, 4))
	assert.Equal(t, "", TruncateText(text, 1))

	long := strings.Repeat("ж", maxPromptChars)
	cut := TruncateText(long, maxPromptChars+1)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), maxPromptChars+1)
}

func TestResumeExtractor_URLAllowlist(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("instance metadata"))
	}))
	defer internal.Close()
	internalURL, err := url.Parse(internal.URL)
	require.NoError(t, err)

	// без белого списка URL не скачиваются вообще
	_, err = NewResumeExtractor(nil, nil, nil).Extract(context.Background(), internal.URL+"/cv.txt")
	assert.ErrorIs(t, err, ErrResumeHostNotAllowed)

	_, err = NewResumeExtractor(nil, nil, []string{"cdn.example.com"}).Extract(context.Background(), internal.URL+"/cv.txt")
	assert.ErrorIs(t, err, ErrResumeHostNotAllowed)

	text, err := NewResumeExtractor(nil, internal.Client(), []string{internalURL.Hostname()}).Extract(context.Background(), internal.URL+"/cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "instance metadata", text)
}

func TestResumeExtractor_RedirectOutsideAllowlist(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secret"))
	}))
	defer target.Close()

	allowed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, strings.Replace(target.URL, "127.0.0.1", "localhost", 1)+"/cv.txt", http.StatusFound)
	}))
	defer allowed.Close()

	_, err := NewResumeExtractor(nil, nil, []string{"127.0.0.1"}).Extract(context.Background(), allowed.URL+"/cv.txt")
	assert.ErrorIs(t, err, ErrResumeHostNotAllowed)
}
