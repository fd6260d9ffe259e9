// Package session holds ephemeral per-user state and wires UI actions to
// the audio, transcription, and speech services.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is the current step of a session's single in-flight action.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseRecording    Phase = "recording"
	PhaseUploading    Phase = "uploading"
	PhaseTranscribing Phase = "transcribing"
	PhaseSpeaking     Phase = "speaking"
	PhaseDone         Phase = "done"
)

// ErrBusy is returned when an action arrives while another is in flight.
// One action at a time per session.
var ErrBusy = errors.New("another action is in progress")

// Session is the per-user state: the last transcript, the last recording,
// and the phase of the current action. Mutated in place, never persisted.
type Session struct {
	ID string

	mu         sync.Mutex
	phase      Phase
	busy       bool
	transcript string
	recording  []float32
	updatedAt  time.Time
}

// Snapshot is a read-only view of a session for display.
type Snapshot struct {
	ID         string    `json:"id"`
	Phase      Phase     `json:"phase"`
	Transcript string    `json:"transcript"`
	Samples    int       `json:"recorded_samples"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newSession(id string) *Session {
	return &Session{ID: id, phase: PhaseIdle, updatedAt: time.Now()}
}

// begin claims the session for one action, or reports ErrBusy.
func (s *Session) begin(p Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.phase = p
	s.updatedAt = time.Now()
	return nil
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
	s.updatedAt = time.Now()
}

// finish releases the session. ok lands on done, failure back on idle.
func (s *Session) finish(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if ok {
		s.phase = PhaseDone
	} else {
		s.phase = PhaseIdle
	}
	s.updatedAt = time.Now()
}

// setTranscript records the output of a successful transcription attempt.
func (s *Session) setTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
	s.updatedAt = time.Now()
}

func (s *Session) setRecording(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = samples
	s.updatedAt = time.Now()
}

// Transcript returns the output of the most recent successful
// transcription attempt.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Recording returns the most recent recording buffer.
func (s *Session) Recording() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Snapshot returns a copy of the display state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.ID,
		Phase:      s.phase,
		Transcript: s.transcript,
		Samples:    len(s.recording),
		UpdatedAt:  s.updatedAt,
	}
}

// Manager owns the in-memory session map. Sessions are created on first
// interaction and discarded after sitting idle for ttl.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager returns a Manager discarding sessions idle longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// GetOrCreate returns the session for id, minting a fresh one when id is
// empty or unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}
	s := newSession(uuid.NewString())
	m.sessions[s.ID] = s
	return s
}

// Len reports the live session count.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		expired := !s.busy && now.Sub(s.updatedAt) > m.ttl
		s.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until done is closed.
func (m *Manager) Run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
