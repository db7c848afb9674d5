package httpadapter

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/extractor"
)

type upload struct {
	data        []byte
	filename    string
	contentType string
}

// readUpload pulls the multipart "file" part, capped at the configured upload
// limit. The extension whitelist is enforced here so async submissions are
// rejected before staging anything. The content type is sniffed from the
// bytes when the client sent none.
func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "uploaded file is too large"})
			return upload{}, false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return upload{}, false
	}
	defer file.Close()

	if !extractor.IsSupported(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported file format"})
		return upload{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "uploaded file is too large"})
			return upload{}, false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read uploaded file"})
		return upload{}, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return upload{
		data:        data,
		filename:    header.Filename,
		contentType: contentType,
	}, true
}

func (rt *Router) analyzeResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	up, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	report, err := rt.analyzer.Report(r.Context(), up.data, up.filename)
	rt.recordAnalysis(report.Analysis, time.Since(start), err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// recordAnalysis feeds the classification outcome into the analysis series.
func (rt *Router) recordAnalysis(analysis domain.Analysis, duration time.Duration, err error) {
	if rt.obs == nil {
		return
	}
	mode := "model"
	if analysis.Fallback {
		mode = "fallback"
	}
	rt.obs.RecordAnalysis(rt.service, analysis.Domain, mode, analysis.Confidence, analysis.ExtractedTextLength, duration, err)
}

func (rt *Router) improveResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	up, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	result, err := rt.improver.Improve(r.Context(), up.data, up.filename, r.FormValue("domain"))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.obs != nil {
		rt.obs.RecordImprovement(rt.service, len(result.Suggestions))
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) checkPlagiarism(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	up, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	result, err := rt.checker.Check(r.Context(), up.data, up.filename)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.obs != nil {
		rt.obs.RecordUniquenessCheck(rt.service, result.TotalMatches)
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) companiesForDomain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	domainLabel := strings.TrimPrefix(r.URL.Path, "/api/companies/")
	if domainLabel == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain is required"})
		return
	}

	var skills []string
	if raw := r.URL.Query().Get("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}

	limit := rt.cfg.MaxCompanyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	companies := rt.companies.CompaniesFor(domainLabel, skills, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":    domainLabel,
		"companies": companies,
		"count":     len(companies),
	})
}

func (rt *Router) listDomains(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"domains": domain.KnownDomains})
}

func (rt *Router) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	up, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	job, err := rt.submitter.Submit(r.Context(), up.filename, up.contentType, bytes.NewReader(up.data))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) getAnalysisByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/analyses/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "analysis id is required"})
		return
	}

	job, err := rt.jobs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
