package speak

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"speechbox/internal/config"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

// Engine wraps the host speech binary (say on macOS, espeak elsewhere).
type Engine struct {
	binary  string
	args    []string
	rateWPM int
	timeout time.Duration
	logger  *logrus.Logger

	// run is swapped out in tests.
	run func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewLocal builds the engine from config, resolving the platform default
// binary when speak.command is unset.
func NewLocal(cfg *config.Config, logger *logrus.Logger) (*Engine, error) {
	bin := strings.TrimSpace(cfg.Speak.Command)
	if bin == "" {
		if runtime.GOOS == "darwin" {
			bin = "say"
		} else {
			bin = "espeak"
		}
	}
	extra, err := shlex.Split(cfg.Speak.Args)
	if err != nil {
		return nil, fmt.Errorf("parse speak.args: %w", err)
	}
	e := &Engine{
		binary:  bin,
		args:    extra,
		rateWPM: cfg.Speak.RateWPM,
		timeout: time.Duration(float64(time.Second) * cfg.Speak.TimeoutSec),
		logger:  logger,
	}
	e.run = func(ctx context.Context, bin string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, bin, args...).CombinedOutput()
	}
	return e, nil
}

func (e *Engine) Name() string { return e.binary }

// Speak blocks until the text has been spoken. Empty text is a no-op error
// the caller reports as a warning.
func (e *Engine) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	args := e.buildArgs(text)

	runCtx := ctx
	var cancel context.CancelFunc
	if e.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	out, err := e.run(runCtx, e.binary, args...)
	if len(out) > 0 {
		e.logger.Debugf("speak output: %s", strings.TrimSpace(string(out)))
	}
	if err != nil {
		return fmt.Errorf("speech engine failed: %w", err)
	}
	return nil
}

func (e *Engine) buildArgs(text string) []string {
	args := []string{}
	if e.rateWPM > 0 {
		// say takes -r, espeak takes -s; both are words per minute.
		flag := "-s"
		if strings.HasSuffix(e.binary, "say") {
			flag = "-r"
		}
		args = append(args, flag, strconv.Itoa(e.rateWPM))
	}
	args = append(args, e.args...)
	return append(args, text)
}
