package speak

import (
	"context"
	"errors"
	"testing"

	"speechbox/internal/config"

	"github.com/sirupsen/logrus"
)

func testEngine(t *testing.T, command string) *Engine {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Speak.Command = command
	e, err := NewLocal(cfg, logrus.New())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestWordCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"hello world", 2},
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"  spaced   out\ttokens\nhere ", 4},
	}
	for _, c := range cases {
		if got := WordCount(c.text); got != c.want {
			t.Fatalf("WordCount(%q)=%d want %d", c.text, got, c.want)
		}
	}
}

func TestSpeakEmptyTextIsNoop(t *testing.T) {
	e := testEngine(t, "say")
	calls := 0
	e.run = func(context.Context, string, ...string) ([]byte, error) {
		calls++
		return nil, nil
	}
	if err := e.Speak(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("engine invoked %d times for empty text", calls)
	}
}

func TestSpeakInvokesEngineOnce(t *testing.T) {
	e := testEngine(t, "say")
	calls := 0
	var gotArgs []string
	e.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		calls++
		gotArgs = args
		return nil, nil
	}
	if err := e.Speak(context.Background(), "hello there"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if calls != 1 {
		t.Fatalf("engine invoked %d times, want 1", calls)
	}
	if len(gotArgs) != 3 || gotArgs[0] != "-r" || gotArgs[1] != "150" || gotArgs[2] != "hello there" {
		t.Fatalf("unexpected args %v", gotArgs)
	}
}

func TestSpeakRateFlagPerBinary(t *testing.T) {
	e := testEngine(t, "espeak")
	var gotArgs []string
	e.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	}
	if err := e.Speak(context.Background(), "hi"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if gotArgs[0] != "-s" {
		t.Fatalf("espeak should use -s, got %v", gotArgs)
	}
}

func TestSpeakSurfacesEngineFailure(t *testing.T) {
	e := testEngine(t, "say")
	e.run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("device busy"), errors.New("exit status 1")
	}
	if err := e.Speak(context.Background(), "hello"); err == nil {
		t.Fatalf("expected failure to surface")
	}
}

func TestExtraArgsParsed(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Speak.Command = "say"
	cfg.Speak.Args = `-v "Samantha Premium"`
	e, err := NewLocal(cfg, logrus.New())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	var gotArgs []string
	e.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	}
	if err := e.Speak(context.Background(), "hi"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	want := []string{"-r", "150", "-v", "Samantha Premium", "hi"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args %v want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args %v want %v", gotArgs, want)
		}
	}
}
