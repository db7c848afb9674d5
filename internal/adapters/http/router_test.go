package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resumehq/resume-analyzer/internal/config"
	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/observability/metrics"
)

type analyzerStub struct {
	report domain.Report
	err    error
}

func (s *analyzerStub) Analyze(context.Context, []byte, string) (domain.Analysis, error) {
	return s.report.Analysis, s.err
}

func (s *analyzerStub) Report(context.Context, []byte, string) (domain.Report, error) {
	if s.err != nil {
		return domain.Report{}, s.err
	}
	return s.report, nil
}

type improverStub struct {
	result domain.ImprovementResult
	err    error
}

func (s *improverStub) Improve(context.Context, []byte, string, string) (domain.ImprovementResult, error) {
	return s.result, s.err
}

type checkerStub struct {
	result domain.PlagiarismResult
	err    error
}

func (s *checkerStub) Check(context.Context, []byte, string) (domain.PlagiarismResult, error) {
	return s.result, s.err
}

type finderStub struct {
	gotDomain string
	gotSkills []string
	gotLimit  int
	companies []domain.Company
}

func (s *finderStub) CompaniesFor(domainLabel string, skills []string, limit int) []domain.Company {
	s.gotDomain = domainLabel
	s.gotSkills = skills
	s.gotLimit = limit
	return s.companies
}

type submitterStub struct {
	job    *domain.AnalysisJob
	err    error
	called bool
}

func (s *submitterStub) Submit(context.Context, string, string, io.Reader) (*domain.AnalysisJob, error) {
	s.called = true
	return s.job, s.err
}

type jobReaderStub struct {
	job *domain.AnalysisJob
	err error
}

func (s *jobReaderStub) GetByID(context.Context, string) (*domain.AnalysisJob, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

type testDeps struct {
	analyzer  *analyzerStub
	improver  *improverStub
	checker   *checkerStub
	finder    *finderStub
	submitter *submitterStub
	jobs      *jobReaderStub
}

func defaultTestConfig() config.Config {
	return config.Config{
		MaxUploadBytes:    1 << 20,
		MaxCompanyLimit:   10,
		APIRateLimitRPS:   100,
		APIRateLimitBurst: 100,
		APIMaxInFlight:    16,
	}
}

func newTestRouter(cfg config.Config, deps testDeps) http.Handler {
	return newTestRouterWithMetrics(cfg, deps, nil)
}

func newTestRouterWithMetrics(cfg config.Config, deps testDeps, obs *metrics.HTTPServerMetrics) http.Handler {
	if deps.analyzer == nil {
		deps.analyzer = &analyzerStub{}
	}
	if deps.improver == nil {
		deps.improver = &improverStub{}
	}
	if deps.checker == nil {
		deps.checker = &checkerStub{}
	}
	if deps.finder == nil {
		deps.finder = &finderStub{}
	}
	if deps.submitter == nil {
		deps.submitter = &submitterStub{}
	}
	if deps.jobs == nil {
		deps.jobs = &jobReaderStub{}
	}
	return NewRouter(cfg, "resume-api-test", obs, deps.analyzer, deps.improver, deps.checker, deps.finder, deps.submitter, deps.jobs, true).Handler()
}

func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestAnalyzeResumeReturnsReport(t *testing.T) {
	report := domain.Report{
		Analysis: domain.Analysis{Domain: "Data Science", Confidence: 92.5, Skills: []string{"Python"}},
	}
	handler := newTestRouter(defaultTestConfig(), testDeps{analyzer: &analyzerStub{report: report}})

	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4 content"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var got domain.Report
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Domain != "Data Science" || got.Confidence != 92.5 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestAnalyzeResumeRequiresFilePart(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", bytes.NewBufferString("not multipart"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnalyzeResumeErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported format", domain.WrapError(domain.ErrUnsupportedFormat, "extract", errors.New(".exe")), http.StatusBadRequest},
		{"empty text", domain.WrapError(domain.ErrEmptyExtractedText, "extract", errors.New("empty")), http.StatusUnprocessableEntity},
		{"no valid text", domain.WrapError(domain.ErrNoValidText, "normalize", errors.New("empty")), http.StatusUnprocessableEntity},
		{"prediction failed", domain.WrapError(domain.ErrPredictionFailed, "predict", errors.New("boom")), http.StatusInternalServerError},
		{"temporary", domain.WrapError(domain.ErrTemporary, "publish", errors.New("nats down")), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(defaultTestConfig(), testDeps{analyzer: &analyzerStub{err: tc.err}})

			body, contentType := multipartUpload(t, "resume.pdf", []byte("x"), nil)
			req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", body)
			req.Header.Set("Content-Type", contentType)
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if res.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.Code)
			}
		})
	}
}

func TestAnalyzeResumeRejectsOversizedUpload(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxUploadBytes = 64
	handler := newTestRouter(cfg, testDeps{})

	body, contentType := multipartUpload(t, "resume.pdf", bytes.Repeat([]byte("a"), 1024), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", res.Code)
	}
}

func TestImproveResumePassesDomainField(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{
		improver: &improverStub{result: domain.ImprovementResult{OverallScore: 85}},
	})

	body, contentType := multipartUpload(t, "resume.txt", []byte("text"), map[string]string{"domain": "Data Science"})
	req := httptest.NewRequest(http.MethodPost, "/api/improve-resume", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var got domain.ImprovementResult
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.OverallScore != 85 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCompaniesEndpointParsesSkillsAndLimit(t *testing.T) {
	finder := &finderStub{companies: []domain.Company{{Name: "Google"}}}
	handler := newTestRouter(defaultTestConfig(), testDeps{finder: finder})

	req := httptest.NewRequest(http.MethodGet, "/api/companies/Software%20Engineering?skills=Go,Python&limit=3", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if finder.gotDomain != "Software Engineering" {
		t.Fatalf("domain = %q", finder.gotDomain)
	}
	if len(finder.gotSkills) != 2 || finder.gotSkills[0] != "Go" {
		t.Fatalf("skills = %v", finder.gotSkills)
	}
	if finder.gotLimit != 3 {
		t.Fatalf("limit = %d", finder.gotLimit)
	}
}

func TestCompaniesEndpointCapsLimit(t *testing.T) {
	finder := &finderStub{}
	cfg := defaultTestConfig()
	cfg.MaxCompanyLimit = 5
	handler := newTestRouter(cfg, testDeps{finder: finder})

	req := httptest.NewRequest(http.MethodGet, "/api/companies/Marketing?limit=100", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if finder.gotLimit != 5 {
		t.Fatalf("limit must be capped at 5, got %d", finder.gotLimit)
	}
}

func TestDomainsEndpoint(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/domains", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var got struct {
		Domains []string `json:"domains"`
	}
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Domains) == 0 {
		t.Fatalf("expected advertised domains")
	}
}

func TestSubmitAnalysisReturnsAccepted(t *testing.T) {
	job := &domain.AnalysisJob{ID: "j-1", Filename: "resume.pdf", Status: domain.StatusQueued}
	handler := newTestRouter(defaultTestConfig(), testDeps{submitter: &submitterStub{job: job}})

	body, contentType := multipartUpload(t, "resume.pdf", []byte("bytes"), nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.Code)
	}
	var got domain.AnalysisJob
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "j-1" || got.Status != domain.StatusQueued {
		t.Fatalf("unexpected job: %+v", got)
	}
}

func TestGetAnalysisByIDNotFound(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{
		jobs: &jobReaderStub{err: domain.WrapError(domain.ErrJobNotFound, "get analysis job", errors.New("no rows"))},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/analyses/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestHealthzReportsModelState(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var got struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != "ok" || !got.ModelLoaded {
		t.Fatalf("unexpected health payload: %+v", got)
	}
}

func TestSubmitAnalysisRejectsUnsupportedExtensionBeforeStaging(t *testing.T) {
	submitter := &submitterStub{job: &domain.AnalysisJob{ID: "j-1"}}
	handler := newTestRouter(defaultTestConfig(), testDeps{submitter: submitter})

	body, contentType := multipartUpload(t, "resume.png", []byte("png bytes"), nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported extension, got %d", res.Code)
	}
	if submitter.called {
		t.Fatalf("unsupported upload must be rejected before staging a job")
	}
}

func TestAnalysisEndpointsRecordMetrics(t *testing.T) {
	obs := metrics.NewHTTPServerMetrics("resume-api-test")
	report := domain.Report{
		Analysis: domain.Analysis{Domain: "Data Science", Confidence: 92.5, ExtractedTextLength: 640},
	}
	handler := newTestRouterWithMetrics(defaultTestConfig(), testDeps{
		analyzer: &analyzerStub{report: report},
		improver: &improverStub{result: domain.ImprovementResult{Suggestions: []domain.Suggestion{{Category: "content"}}}},
		checker:  &checkerStub{result: domain.PlagiarismResult{TotalMatches: 3}},
	}, obs)

	for _, path := range []string{"/api/analyze-resume", "/api/improve-resume", "/api/check-plagiarism"} {
		body, contentType := multipartUpload(t, "resume.pdf", []byte("x"), nil)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, res.Code)
		}
	}

	scrape := httptest.NewRecorder()
	obs.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	exposition := scrape.Body.String()

	for _, want := range []string{
		`resume_analysis_total{domain="Data Science",mode="model",service="resume-api-test",status="success"} 1`,
		"resume_analysis_confidence_count",
		"resume_analysis_extracted_chars_count",
		"resume_improve_suggestions_count",
		"resume_uniqueness_matches_count",
	} {
		if !bytes.Contains([]byte(exposition), []byte(want)) {
			t.Fatalf("metrics exposition missing %q:\n%s", want, exposition)
		}
	}
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	handler := newTestRouter(defaultTestConfig(), testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("request id must be echoed, got %q", res.Header().Get(requestIDHeader))
	}
}
