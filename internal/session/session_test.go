package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"speechbox/internal/config"
	"speechbox/internal/speak"

	"github.com/sirupsen/logrus"
)

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Transcribe(_ context.Context, samples []float32) (string, error) {
	f.calls++
	if len(samples) == 0 {
		return "", nil
	}
	return f.text, f.err
}

type fakeSynth struct {
	err   error
	calls int
	last  string
}

func (f *fakeSynth) Name() string { return "fake-say" }

func (f *fakeSynth) Speak(_ context.Context, text string) error {
	if text == "" {
		return speak.ErrEmptyText
	}
	f.calls++
	f.last = text
	return f.err
}

func testOrchestrator(t *testing.T, rec *fakeRecognizer, synth *fakeSynth) *Orchestrator {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Audio.TrimVAD = false
	o := NewOrchestrator(cfg, logrus.New(), rec, synth)
	o.record = func() ([]float32, error) {
		return make([]float32, cfg.Audio.RecordSec*cfg.Audio.SampleRate), nil
	}
	return o
}

func TestRecordAndTranscribeStoresResult(t *testing.T) {
	rec := &fakeRecognizer{text: "hello world"}
	o := testOrchestrator(t, rec, &fakeSynth{})
	sess := newSession("s1")

	text, err := o.RecordAndTranscribe(context.Background(), sess)
	if err != nil {
		t.Fatalf("record+transcribe: %v", err)
	}
	if text != "hello world" || sess.Transcript() != "hello world" {
		t.Fatalf("transcript not stored: %q / %q", text, sess.Transcript())
	}
	if got := len(sess.Recording()); got != 5*16000 {
		t.Fatalf("recording buffer %d samples, want %d", got, 5*16000)
	}
	if snap := sess.Snapshot(); snap.Phase != PhaseDone {
		t.Fatalf("phase %q, want done", snap.Phase)
	}
}

func TestTranscribeFailureKeepsLastTranscript(t *testing.T) {
	rec := &fakeRecognizer{text: "first"}
	o := testOrchestrator(t, rec, &fakeSynth{})
	sess := newSession("s1")

	if _, err := o.RecordAndTranscribe(context.Background(), sess); err != nil {
		t.Fatalf("first pass: %v", err)
	}

	rec.err = errors.New("model exploded")
	if _, err := o.RecordAndTranscribe(context.Background(), sess); err == nil {
		t.Fatalf("expected engine failure to surface")
	}
	// Transcript still holds the most recent successful attempt.
	if sess.Transcript() != "first" {
		t.Fatalf("transcript clobbered: %q", sess.Transcript())
	}
	if snap := sess.Snapshot(); snap.Phase != PhaseIdle {
		t.Fatalf("failed action should land on idle, got %q", snap.Phase)
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	o := testOrchestrator(t, &fakeRecognizer{}, &fakeSynth{})
	sess := newSession("s1")

	if _, err := o.TranscribeUpload(context.Background(), sess, "notes.txt", []byte{1}); err == nil {
		t.Fatalf("expected unsupported-format error")
	}
	if sess.Snapshot().Phase != PhaseIdle {
		t.Fatalf("session should return to idle")
	}
}

func TestSpeakDelegatesOnce(t *testing.T) {
	synth := &fakeSynth{}
	o := testOrchestrator(t, &fakeRecognizer{}, synth)
	sess := newSession("s1")

	if err := o.Speak(context.Background(), sess, "hello"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if synth.calls != 1 || synth.last != "hello" {
		t.Fatalf("synth calls=%d last=%q", synth.calls, synth.last)
	}
}

func TestSpeakEmptyTextWarns(t *testing.T) {
	synth := &fakeSynth{}
	o := testOrchestrator(t, &fakeRecognizer{}, synth)
	sess := newSession("s1")

	if err := o.Speak(context.Background(), sess, ""); !errors.Is(err, speak.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if synth.calls != 0 {
		t.Fatalf("synth invoked for empty text")
	}
}

func TestRecordAndRepeatSpeaksTranscript(t *testing.T) {
	rec := &fakeRecognizer{text: "say it back"}
	synth := &fakeSynth{}
	o := testOrchestrator(t, rec, synth)
	sess := newSession("s1")

	text, err := o.RecordAndRepeat(context.Background(), sess)
	if err != nil {
		t.Fatalf("record+repeat: %v", err)
	}
	if text != "say it back" || synth.last != "say it back" {
		t.Fatalf("repeat mismatch: %q spoken %q", text, synth.last)
	}
}

func TestBusySessionRejectsConcurrentAction(t *testing.T) {
	sess := newSession("s1")
	if err := sess.begin(PhaseRecording); err != nil {
		t.Fatalf("begin: %v", err)
	}
	o := testOrchestrator(t, &fakeRecognizer{}, &fakeSynth{})
	if _, err := o.RecordAndTranscribe(context.Background(), sess); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestManagerCreateAndReuse(t *testing.T) {
	m := NewManager(time.Minute)
	s1 := m.GetOrCreate("")
	if s1.ID == "" {
		t.Fatalf("expected minted session id")
	}
	if s2 := m.GetOrCreate(s1.ID); s2 != s1 {
		t.Fatalf("expected same session for known id")
	}
	if s3 := m.GetOrCreate("unknown-id"); s3 == s1 {
		t.Fatalf("unknown id should mint a new session")
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", m.Len())
	}
}

func TestManagerSweepExpiresIdleSessions(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.GetOrCreate("")
	busy := m.GetOrCreate("")
	if err := busy.begin(PhaseRecording); err != nil {
		t.Fatalf("begin: %v", err)
	}

	future := time.Now().Add(2 * time.Minute)
	if removed := m.Sweep(future); removed != 1 {
		t.Fatalf("removed %d sessions, want 1 (busy ones stay)", removed)
	}
	if got := m.GetOrCreate(s.ID); got == s {
		t.Fatalf("expired session should have been dropped")
	}
}
