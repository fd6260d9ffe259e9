package web

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type metrics struct {
	uploads    atomic.Int64
	recordings atomic.Int64
	speaks     atomic.Int64
	failures   atomic.Int64
}

func (m *metrics) incUploads()    { m.uploads.Add(1) }
func (m *metrics) incRecordings() { m.recordings.Add(1) }
func (m *metrics) incSpeaks()     { m.speaks.Add(1) }
func (m *metrics) incFailures()   { m.failures.Add(1) }

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "speechbox_uploads_total %d\n", s.metrics.uploads.Load())
	fmt.Fprintf(w, "speechbox_recordings_total %d\n", s.metrics.recordings.Load())
	fmt.Fprintf(w, "speechbox_speaks_total %d\n", s.metrics.speaks.Load())
	fmt.Fprintf(w, "speechbox_failures_total %d\n", s.metrics.failures.Load())
	fmt.Fprintf(w, "speechbox_sessions %d\n", s.sessions.Len())
}
