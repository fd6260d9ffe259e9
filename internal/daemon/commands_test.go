package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"speechbox/internal/config"
)

func TestReadPID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speechbox.pid")

	if _, err := readPID(path); err == nil {
		t.Fatal("expected error for missing pid file")
	}

	if err := os.WriteFile(path, []byte("12345\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pid, err := readPID(path)
	if err != nil {
		t.Fatalf("readPID: %v", err)
	}
	if pid != 12345 {
		t.Fatalf("pid = %d, want 12345", pid)
	}

	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readPID(path); err == nil {
		t.Fatal("expected error for malformed pid file")
	}
}

func TestEnsureNotRunning(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Paths.PidPath = filepath.Join(dir, "speechbox.pid")

	// No pid file: fine to start.
	if err := ensureNotRunning(cfg); err != nil {
		t.Fatalf("ensureNotRunning with no pid file: %v", err)
	}

	// Our own pid is definitely alive.
	if err := os.WriteFile(cfg.Paths.PidPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureNotRunning(cfg); err == nil {
		t.Fatal("expected error when pid belongs to a live process")
	}
}

func TestWaitForShutdownRemovesStalePid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Paths.PidPath = filepath.Join(dir, "speechbox.pid")
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatal(err)
	}

	// A pid that cannot exist on Linux (max pid is far below this).
	if err := os.WriteFile(cfg.Paths.PidPath, []byte("999999999"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := waitForShutdown(cfgPath, 2*time.Second); err != nil {
		t.Fatalf("waitForShutdown: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.PidPath); !os.IsNotExist(err) {
		t.Fatal("stale pid file should be removed")
	}
}
