// Package web serves the speechbox UI and its JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"speechbox/internal/config"
	"speechbox/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const sessionCookie = "speechbox_session"

// Server hosts the UI, per-session orchestration, and metrics.
type Server struct {
	cfg      *config.Config
	logger   *logrus.Logger
	orch     *session.Orchestrator
	sessions *session.Manager

	startedAt time.Time
	metrics   metrics

	transcriptsMu sync.Mutex
	transcripts   []Transcript
}

// Transcript is one line of the recent-results tail.
type Transcript struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the response of /api/status.
type Status struct {
	Running     bool              `json:"running"`
	Engine      string            `json:"engine"`
	UptimeSec   float64           `json:"uptime_sec"`
	Session     *session.Snapshot `json:"session,omitempty"`
	Transcripts []Transcript      `json:"transcripts"`
}

// NewServer wires the orchestrator into an HTTP server.
func NewServer(cfg *config.Config, logger *logrus.Logger, orch *session.Orchestrator) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		orch:      orch,
		sessions:  session.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute),
		startedAt: time.Now(),
	}
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(api chi.Router) {
		api.Post("/transcribe", s.handleTranscribe)
		api.Post("/record", s.handleRecord)
		api.Post("/repeat", s.handleRepeat)
		api.Post("/speak", s.handleSpeak)
		api.Post("/snippet", s.handleSnippet)
		api.Get("/status", s.handleStatus)
	})
	return r
}

// Serve runs the HTTP server until interrupted. Writes a pid file so the
// daemon commands can find the process.
func (s *Server) Serve() error {
	if err := config.MustStatePaths(s.cfg); err != nil {
		return err
	}
	if err := os.WriteFile(s.cfg.Paths.PidPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(s.cfg.Paths.PidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnf("remove pid file: %v", err)
		}
	}()

	done := make(chan struct{})
	sweepInterval := time.Duration(s.cfg.Session.SweepSeconds) * time.Second
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	go s.sessions.Run(done, sweepInterval)
	defer close(done)

	srv := &http.Server{
		Addr:    s.cfg.Server.ListenAddr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on http://%s", s.cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Infof("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// sessionFor resolves the caller's session from the cookie, minting one on
// first contact.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	sess := s.sessions.GetOrCreate(id)
	if sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) recordTranscript(text string) {
	if !s.cfg.Transcripts.Enabled || text == "" {
		return
	}
	entry := Transcript{Text: text, Timestamp: time.Now()}
	s.transcriptsMu.Lock()
	defer s.transcriptsMu.Unlock()
	s.transcripts = append(s.transcripts, entry)
	if len(s.transcripts) > s.cfg.Server.StatusTail {
		s.transcripts = s.transcripts[len(s.transcripts)-s.cfg.Server.StatusTail:]
	}
	// append to file
	f, err := os.OpenFile(s.cfg.Paths.TranscriptPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		if _, err := fmt.Fprintf(f, "%s\t%s\n", entry.Timestamp.Format(time.RFC3339), entry.Text); err != nil {
			s.logger.Warnf("write transcript: %v", err)
		}
		_ = f.Close()
	}
}

func (s *Server) copyTranscripts() []Transcript {
	s.transcriptsMu.Lock()
	defer s.transcriptsMu.Unlock()
	out := make([]Transcript, len(s.transcripts))
	copy(out, s.transcripts)
	return out
}
