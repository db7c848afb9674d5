package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/resumehq/resume-analyzer/internal/config"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
	"github.com/resumehq/resume-analyzer/internal/observability/metrics"
)

type Router struct {
	cfg     config.Config
	service string
	obs     *metrics.HTTPServerMetrics

	analyzer  ports.ResumeAnalyzer
	improver  ports.ResumeImprover
	checker   ports.UniquenessChecker
	companies ports.CompanyFinder

	submitter ports.JobSubmitter
	jobs      ports.JobReader

	modelLoaded bool
}

func NewRouter(
	cfg config.Config,
	service string,
	obs *metrics.HTTPServerMetrics,
	analyzer ports.ResumeAnalyzer,
	improver ports.ResumeImprover,
	checker ports.UniquenessChecker,
	companies ports.CompanyFinder,
	submitter ports.JobSubmitter,
	jobs ports.JobReader,
	modelLoaded bool,
) *Router {
	return &Router{
		cfg:         cfg,
		service:     service,
		obs:         obs,
		analyzer:    analyzer,
		improver:    improver,
		checker:     checker,
		companies:   companies,
		submitter:   submitter,
		jobs:        jobs,
		modelLoaded: modelLoaded,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/analyze-resume", rt.analyzeResume)
	mux.HandleFunc("/api/improve-resume", rt.improveResume)
	mux.HandleFunc("/api/check-plagiarism", rt.checkPlagiarism)
	mux.HandleFunc("/api/companies/", rt.companiesForDomain)
	mux.HandleFunc("/api/domains", rt.listDomains)
	mux.HandleFunc("/v1/analyses", rt.submitAnalysis)
	mux.HandleFunc("/v1/analyses/", rt.getAnalysisByID)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"model_loaded": rt.modelLoaded,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
