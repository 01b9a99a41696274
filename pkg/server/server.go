// Package server exposes the planner over a small JSON HTTP API.
package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeGROOVE-dev/tzplan/pkg/metrics"
	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
)

const maxBodyBytes = 64 << 10

// Config holds server settings.
type Config struct {
	// CacheSize is the number of converted responses kept; 0 disables the cache.
	CacheSize int
	CacheTTL  time.Duration
	// RateLimit is the number of conversions allowed per client IP per minute; 0 disables limiting.
	RateLimit int
}

// Server serves conversion requests.
type Server struct {
	planner  *planner.Planner
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	cache    otter.Cache[string, []byte]
	hasCache bool
	limiter  *rateLimiter
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Server. Metrics are registered on a private registry served at /metrics.
func New(p *planner.Planner, cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		planner:  p,
		metrics:  metrics.New(reg),
		registry: reg,
		logger:   logger,
		now:      time.Now,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newRateLimiter(cfg.RateLimit, time.Minute)
	}
	if cfg.CacheSize > 0 {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		cache, err := otter.MustBuilder[string, []byte](cfg.CacheSize).
			WithTTL(ttl).
			Build()
		if err != nil {
			return nil, fmt.Errorf("building response cache: %w", err)
		}
		s.cache = cache
		s.hasCache = true
	}
	return s, nil
}

// Handler returns the server's routes wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/convert", s.handleConvert)
	mux.HandleFunc("GET /api/v1/zones/{zone...}", s.handleZone)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s.wrap(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r),
					"stack", string(buf))
				http.Error(rec, "Internal server error", http.StatusInternalServerError)
			}

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			s.metrics.Requests.WithLabelValues(route, fmt.Sprint(rec.status)).Inc()
			s.logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"client_ip", clientIP(r),
				"duration", time.Since(start))
		}()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		}

		handler.ServeHTTP(rec, r)
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get("X-Request-ID")

	if s.limiter != nil && !s.limiter.allow(clientIP(r), s.now()) {
		s.metrics.RateLimited.Inc()
		s.logger.Warn("Rate limit exceeded", "request_id", requestID, "client_ip", clientIP(r))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	var scenario planner.Scenario
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&scenario); err != nil {
		s.logger.Debug("bad scenario", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scenario: %v", err))
		return
	}

	key, cacheable := s.cacheKey(scenario)
	if cacheable {
		if cached, found := s.cache.Get(key); found {
			s.metrics.ResponseCacheHits.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-From-Cache", "true")
			if _, err := w.Write(cached); err != nil {
				s.logger.Debug("write failed", "request_id", requestID, "error", err)
			}
			return
		}
	}

	start := time.Now()
	res := s.planner.Convert(scenario)
	s.metrics.ObserveResult(res, time.Since(start))

	data, err := json.Marshal(res)
	if err != nil {
		s.logger.Error("encoding result failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "encoding result failed")
		return
	}
	if cacheable && !res.FromClock {
		s.cache.Set(key, data)
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write failed", "request_id", requestID, "error", err)
	}
}

// cacheKey identifies a scenario. Scenarios anchored to "now" are not cached.
func (s *Server) cacheKey(scenario planner.Scenario) (string, bool) {
	if !s.hasCache {
		return "", false
	}
	start := strings.TrimSpace(scenario.Start)
	if start == "" || strings.EqualFold(start, "now") {
		return "", false
	}
	canonical, err := json.Marshal(scenario)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), true
}

// ZoneInfo describes one zone at the current instant.
type ZoneInfo struct {
	Zone          string `json:"zone"`
	Valid         bool   `json:"valid"`
	Offset        string `json:"offset,omitempty"`
	OffsetMinutes int    `json:"offset_minutes"`
	Local         string `json:"local,omitempty"`
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	zone := r.PathValue("zone")
	p := s.planner.Provider()
	info := ZoneInfo{Zone: zone, Valid: p.Valid(zone)}
	if info.Valid {
		now := s.now()
		off := tzconvert.ResolveOffset(p, zone, now)
		info.Offset = off.Label()
		info.OffsetMinutes = off.Minutes
		info.Local = tzconvert.Format(p, now, zone, false)
	}
	writeJSON(w, http.StatusOK, info, s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

func writeJSON(w http.ResponseWriter, code int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type rateLimiter struct {
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	mu       sync.Mutex
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}
