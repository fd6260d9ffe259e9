package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"speechbox/internal/config"
	"speechbox/internal/logging"
	"speechbox/internal/model"
	"speechbox/internal/session"
	"speechbox/internal/speak"
	"speechbox/internal/transcribe"
	"speechbox/internal/web"

	"github.com/spf13/cobra"
)

// NewStartCmd starts the server in the background.
func NewStartCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start speechbox server in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if err := ensureNotRunning(cfg); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Paths.PidPath), 0o755); err != nil {
				return err
			}
			self, err := os.Executable()
			if err != nil {
				return err
			}
			child := exec.Command(self, "serve", "--config", cfg.Paths.ConfigPath)
			// propagate runtime flags via env overrides
			child.Env = os.Environ()
			if addr := cmd.Flag("listen-addr").Value.String(); addr != "" {
				child.Env = append(child.Env, fmt.Sprintf("SPEECHBOX_LISTEN_ADDR=%s", addr))
			}
			if engine := cmd.Flag("engine").Value.String(); engine != "" {
				child.Env = append(child.Env, fmt.Sprintf("SPEECHBOX_ENGINE=%s", engine))
			}
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			if err := child.Start(); err != nil {
				return err
			}
			// Wait a moment and confirm pid file appears.
			waited := 0
			for waited < 20 {
				if _, err := os.Stat(cfg.Paths.PidPath); err == nil {
					break
				}
				time.Sleep(100 * time.Millisecond)
				waited++
			}
			fmt.Printf("speechbox started (pid %d)\n", child.Process.Pid)
			return nil
		},
	}
	cmd.Flags().String("listen-addr", "", "listen address for this run (e.g., 127.0.0.1:8973)")
	cmd.Flags().String("engine", "", "transcription engine for this run (local or openai)")
	return cmd
}

// NewServeCmd runs the server in the foreground.
func NewServeCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run speechbox server in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr := cmd.Flag("listen-addr").Value.String(); addr != "" {
				if err := os.Setenv("SPEECHBOX_LISTEN_ADDR", addr); err != nil {
					return fmt.Errorf("set SPEECHBOX_LISTEN_ADDR: %w", err)
				}
			}
			if engine := cmd.Flag("engine").Value.String(); engine != "" {
				if err := os.Setenv("SPEECHBOX_ENGINE", engine); err != nil {
					return fmt.Errorf("set SPEECHBOX_ENGINE: %w", err)
				}
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			srv, closeFn, err := buildServer(cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()
			return srv.Serve()
		},
	}
	cmd.Flags().String("listen-addr", "", "listen address (e.g., 127.0.0.1:8973)")
	cmd.Flags().String("engine", "", "transcription engine (local or openai)")
	return cmd
}

// buildServer wires model loader, recognizer, synthesizer, and orchestrator.
func buildServer(cfg *config.Config, logger *logging.Logger) (*web.Server, func(), error) {
	loader := model.NewWhisper(cfg.ASR.ModelPath)
	rec, err := transcribe.ForConfig(cfg, logger, loader)
	if err != nil {
		return nil, nil, err
	}
	synth, err := speak.NewLocal(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	orch := session.NewOrchestrator(cfg, logger, rec, synth)
	closeFn := func() {
		if err := loader.Close(); err != nil {
			logger.Warnf("close model: %v", err)
		}
	}
	return web.NewServer(cfg, logger, orch), closeFn, nil
}

// NewStopCmd stops the background server.
func NewStopCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop speechbox server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			pid, err := readPID(cfg.Paths.PidPath)
			if err != nil {
				return err
			}
			proc, err := os.FindProcess(pid)
			if err != nil {
				return err
			}
			if err := proc.Signal(syscall.SIGTERM); err != nil {
				return err
			}
			fmt.Println("stop signal sent")
			return nil
		},
	}
}

// NewRestartCmd stops then starts.
func NewRestartCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart speechbox server",
		RunE: func(cmd *cobra.Command, args []string) error {
			stopCmd := NewStopCmd(cfgPath)
			_ = stopCmd.RunE(stopCmd, args) // ignore error if not running

			if err := waitForShutdown(*cfgPath, 5*time.Second); err != nil {
				return err
			}

			startCmd := NewStartCmd(cfgPath)
			return startCmd.RunE(startCmd, args)
		},
	}
}

func ensureNotRunning(cfg *config.Config) error {
	pid, err := readPID(cfg.Paths.PidPath)
	if err != nil {
		return nil
	}
	// Check if process alive.
	proc, err := os.FindProcess(pid)
	if err == nil {
		if err := proc.Signal(syscall.Signal(0)); err == nil {
			return fmt.Errorf("already running with pid %d", pid)
		}
	}
	return nil
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		return 0, err
	}
	return pid, nil
}

func waitForShutdown(cfgPath string, timeout time.Duration) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pid, err := readPID(cfg.Paths.PidPath)
		if err != nil {
			return nil // pid file gone
		}
		proc, _ := os.FindProcess(pid)
		if proc != nil {
			if err := proc.Signal(syscall.Signal(0)); err != nil {
				_ = os.Remove(cfg.Paths.PidPath)
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("restart: server did not stop within %s", timeout)
}
