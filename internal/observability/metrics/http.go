package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal      *prometheus.CounterVec
	analysisConfidence *prometheus.HistogramVec
	extractedChars     *prometheus.HistogramVec
	analysisDuration   *prometheus.HistogramVec
	suggestionsCount   *prometheus.HistogramVec
	uniquenessMatches  *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resume",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "analysis",
			Name:      "total",
			Help:      "Total completed classifications by domain, mode and status.",
		},
		[]string{"service", "domain", "mode", "status"},
	)
	analysisConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "analysis",
			Name:      "confidence",
			Help:      "Distribution of reported confidence per successful classification.",
			Buckets:   []float64{50, 60, 65, 70, 75, 80, 85, 90, 95, 100},
		},
		[]string{"service", "mode"},
	)
	extractedChars := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "analysis",
			Name:      "extracted_chars",
			Help:      "Distribution of extracted text length per classification.",
			Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
		},
		[]string{"service"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Classification pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "mode"},
	)
	suggestionsCount := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "improve",
			Name:      "suggestions",
			Help:      "Distribution of suggestions returned per improvement request.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"service"},
	)
	uniquenessMatches := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume",
			Subsystem: "uniqueness",
			Name:      "matches",
			Help:      "Distribution of boilerplate phrase matches per uniqueness check.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 7},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		analysisConfidence,
		extractedChars,
		analysisDuration,
		suggestionsCount,
		uniquenessMatches,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		analysesTotal:      analysesTotal,
		analysisConfidence: analysisConfidence,
		extractedChars:     extractedChars,
		analysisDuration:   analysisDuration,
		suggestionsCount:   suggestionsCount,
		uniquenessMatches:  uniquenessMatches,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/analyses/"):
		return "/v1/analyses/{analysis_id}"
	case strings.HasPrefix(path, "/api/companies/"):
		return "/api/companies/{domain}"
	default:
		return path
	}
}

// RecordAnalysis counts one classification attempt. Mode is "model" or
// "fallback"; failed attempts carry an empty domain.
func (m *HTTPServerMetrics) RecordAnalysis(service, domainLabel, mode string, confidence float64, extractedChars int, duration time.Duration, err error) {
	if mode == "" {
		mode = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
		domainLabel = "none"
	}

	m.analysesTotal.WithLabelValues(service, domainLabel, mode, status).Inc()
	m.analysisDuration.WithLabelValues(service, mode).Observe(duration.Seconds())
	if err != nil {
		return
	}
	m.analysisConfidence.WithLabelValues(service, mode).Observe(confidence)
	m.extractedChars.WithLabelValues(service).Observe(float64(extractedChars))
}

func (m *HTTPServerMetrics) RecordImprovement(service string, suggestionCount int) {
	m.suggestionsCount.WithLabelValues(service).Observe(float64(suggestionCount))
}

func (m *HTTPServerMetrics) RecordUniquenessCheck(service string, matchCount int) {
	m.uniquenessMatches.WithLabelValues(service).Observe(float64(matchCount))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
