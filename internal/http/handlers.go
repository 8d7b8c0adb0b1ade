package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"medassist/internal/core"
	"medassist/internal/db"
	"medassist/internal/metrics"
	"medassist/pkg"
)

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
// Repo and Alerter are nil when auditing is disabled; the pipeline works
// the same either way.
type Server struct {
	Ask       *core.AskService
	Repo      *db.Repository
	Alerter   *db.Alerter
	Metrics   *metrics.Metrics
	StaticDir string

	static         http.Handler
	metricsHandler http.Handler
}

// NewServer constructs a Server.  staticDir holds the web UI; it is
// served under /static with its index.html at /.
func NewServer(ask *core.AskService, repo *db.Repository, alerter *db.Alerter, m *metrics.Metrics, staticDir string) *Server {
	return &Server{
		Ask:            ask,
		Repo:           repo,
		Alerter:        alerter,
		Metrics:        m,
		StaticDir:      staticDir,
		static:         http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))),
		metricsHandler: m.Handler(),
	}
}

// ServeHTTP dispatches incoming requests based on the URL path.  Minimal
// routing logic is implemented here to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if strings.HasPrefix(path, "/api/") {
		// The web UI may be hosted elsewhere; allow any origin.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	switch {
	case path == "/api/ask" && r.Method == http.MethodPost:
		s.handleAsk(w, r)
	case path == "/api/consultations" && r.Method == http.MethodGet:
		s.handleConsultations(w, r)
	case path == "/health" && r.Method == http.MethodGet:
		s.handleHealth(w, r)
	case path == "/metrics" && r.Method == http.MethodGet:
		s.metricsHandler.ServeHTTP(w, r)
	case path == "/" && r.Method == http.MethodGet:
		http.ServeFile(w, r, filepath.Join(s.StaticDir, "index.html"))
	case strings.HasPrefix(path, "/static/") && r.Method == http.MethodGet:
		s.static.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleHealth is a trivial liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleAsk runs the full question pipeline for one request.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	s.Metrics.InFlightRequests.Inc()
	defer s.Metrics.InFlightRequests.Dec()

	var req pkg.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Metrics.RequestTotal.WithLabelValues("none", "bad_request").Inc()
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp, err := s.Ask.Ask(r.Context(), req)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, core.ErrEmptyQuestion) {
			s.Metrics.RequestTotal.WithLabelValues("none", "bad_request").Inc()
			http.Error(w, "question cannot be empty", http.StatusBadRequest)
			return
		}
		s.Metrics.RequestTotal.WithLabelValues("none", "llm_error").Inc()
		log.Printf("ask failed: %v", err)
		http.Error(w, "error calling LLM: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Only non-short-circuited requests reached the model.
	if resp.UsedPrompt != "" {
		s.Metrics.LLMLatency.Observe(elapsed.Seconds())
	}
	s.Metrics.RequestTotal.WithLabelValues(string(resp.Safety.Level), "success").Inc()

	if s.Repo != nil {
		// Record out of the request path (fire and forget).
		go s.audit(req, resp, elapsed)
	}

	writeJSON(w, resp)
}

// audit stores the exchange and, for emergencies, publishes an alert on
// the NOTIFY channel.  Errors are logged, never surfaced to the caller.
func (s *Server) audit(req pkg.AskRequest, resp *pkg.AskResponse, elapsed time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taskType := req.TaskType
	if taskType == "" {
		taskType = pkg.TaskMedicalQA
	}
	language := req.Language
	if language == "" {
		language = pkg.LangChinese
	}
	c := pkg.Consultation{
		Question:      strings.TrimSpace(req.Question),
		TaskType:      taskType,
		Language:      language,
		SafetyLevel:   resp.Safety.Level,
		SafetyMessage: resp.Safety.Message,
		Answer:        resp.Answer,
		LatencyMs:     int(elapsed.Milliseconds()),
	}
	if resp.Severity != nil {
		c.Severity = resp.Severity.Severity
	}
	if err := s.Repo.RecordConsultation(ctx, &c); err != nil {
		log.Printf("failed to record consultation: %v", err)
		return
	}
	if resp.Safety.Level == pkg.LevelEmergency && s.Alerter != nil {
		if err := s.Alerter.Notify(ctx, c.ID); err != nil {
			log.Printf("failed to publish emergency alert: %v", err)
		}
	}
}

// handleConsultations lists recent audit records as JSON.
func (s *Server) handleConsultations(w http.ResponseWriter, r *http.Request) {
	if s.Repo == nil {
		http.Error(w, "auditing is disabled", http.StatusNotFound)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	consultations, err := s.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if consultations == nil {
		consultations = []pkg.Consultation{}
	}
	writeJSON(w, consultations)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
