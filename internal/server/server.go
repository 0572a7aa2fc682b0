// Package server exposes liveness, metrics, and on-demand environment checks
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/metrics"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/ratelimit"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

const (
	pruneInterval     = time.Minute
	clientIdleTimeout = 10 * time.Minute
)

// Publisher forwards finished reports, e.g. to Kafka.
type Publisher interface {
	PublishReport(ctx context.Context, report *sanity.Report) error
}

type Server struct {
	checks    func() []sanity.Check
	limiter   *ratelimit.PerClientLimiter
	publisher Publisher
	runner    *sanity.Runner
}

// New builds a server. checks is called per request so that no check state
// is shared between requests. publisher may be nil.
func New(checks func() []sanity.Check, limiter *ratelimit.PerClientLimiter, publisher Publisher) *Server {
	return &Server{
		checks:    checks,
		limiter:   limiter,
		publisher: publisher,
		runner:    sanity.NewRunner(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /checks", s.handleChecks)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.limiter != nil {
		go s.pruneClients(ctx, pruneInterval, clientIdleTimeout)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logrus.Infof("Health, metrics & checks running on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleChecks(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow(clientKey(r)) {
		metrics.RateLimited.Inc()
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	report := s.runner.Run(s.checks()...)
	metrics.Observe(report)

	if s.publisher != nil {
		if err := s.publisher.PublishReport(r.Context(), report); err != nil {
			logrus.Warnf("Report %s not published: %v", report.ID, err)
		}
	}

	status := http.StatusOK
	if !report.Passed() {
		status = http.StatusServiceUnavailable
		for _, res := range report.Failed() {
			logrus.WithFields(logrus.Fields{
				"check": res.Check,
				"kind":  res.Kind,
			}).Warn(res.Error)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logrus.Errorf("Failed to write report %s: %v", report.ID, err)
	}
}

// pruneClients drops rate limiters of idle clients until ctx is cancelled.
func (s *Server) pruneClients(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Prune(idle); n > 0 {
				logrus.Debugf("Pruned %d idle rate limiters", n)
			}
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
