package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultListenAddr    = "127.0.0.1:8973"
	defaultRecordSec     = 5
	defaultRateWPM       = 150
	defaultStatusTail    = 10
	defaultSessionTTLMin = 30
	defaultMaxUploadMB   = 64
	defaultStateDirLinux = ".local/state/speechbox"
	defaultConfigDir     = ".config/speechbox"
)

// Config holds user configuration loaded from TOML.
type Config struct {
	Audio struct {
		DeviceName string `toml:"device_name"`
		SampleRate int    `toml:"sample_rate"`
		Channels   int    `toml:"channels"`
		FrameMS    int    `toml:"frame_ms"`
		RecordSec  int    `toml:"record_sec"`
		TrimVAD    bool   `toml:"trim_silence"`
		VADMode    int    `toml:"vad_aggressiveness"`
	} `toml:"audio"`

	ASR struct {
		Engine    string `toml:"engine"` // local, openai
		ModelPath string `toml:"model_path"`
		Language  string `toml:"language"`
		APIModel  string `toml:"api_model"`
	} `toml:"asr"`

	Speak struct {
		Command    string  `toml:"command"` // empty = platform default (say/espeak)
		Args       string  `toml:"args"`    // extra args, shell-style quoting
		RateWPM    int     `toml:"rate_wpm"`
		TimeoutSec float64 `toml:"timeout_sec"`
	} `toml:"speak"`

	Server struct {
		ListenAddr  string `toml:"listen_addr"`
		MaxUploadMB int    `toml:"max_upload_mb"`
		StatusTail  int    `toml:"status_tail"`
	} `toml:"server"`

	Session struct {
		TTLMinutes   int `toml:"ttl_minutes"`
		SweepSeconds int `toml:"sweep_seconds"`
	} `toml:"session"`

	Logging struct {
		Level  string `toml:"level"`  // debug, info, warn, error
		Format string `toml:"format"` // text, json
		Stdout bool   `toml:"stdout"`
	} `toml:"logging"`

	Paths struct {
		StateDir       string `toml:"state_dir"`
		LogPath        string `toml:"log_path"`
		TranscriptPath string `toml:"transcript_path"`
		PidPath        string `toml:"pid_path"`
		ConfigPath     string `toml:"-"`
	} `toml:"paths"`

	Transcripts struct {
		Enabled bool `toml:"enabled"`
	} `toml:"transcripts"`
}

// Default returns Config populated with defaults.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateDir := filepath.Join(home, defaultStateDirLinux)
	// macOS prefers ~/Library/Application Support/speechbox for state/logs
	if isMac() {
		stateDir = filepath.Join(home, "Library", "Application Support", "speechbox")
	}

	cfg := &Config{}

	cfg.Audio.SampleRate = 16000
	cfg.Audio.Channels = 1
	cfg.Audio.FrameMS = 20
	cfg.Audio.RecordSec = defaultRecordSec
	cfg.Audio.TrimVAD = true
	cfg.Audio.VADMode = 2

	cfg.ASR.Engine = "local"
	cfg.ASR.ModelPath = filepath.Join(stateDir, "models", "ggml-tiny.bin")
	cfg.ASR.Language = "auto"
	cfg.ASR.APIModel = "whisper-1"

	cfg.Speak.RateWPM = defaultRateWPM
	cfg.Speak.TimeoutSec = 30

	cfg.Server.ListenAddr = defaultListenAddr
	cfg.Server.MaxUploadMB = defaultMaxUploadMB
	cfg.Server.StatusTail = defaultStatusTail

	cfg.Session.TTLMinutes = defaultSessionTTLMin
	cfg.Session.SweepSeconds = 60

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"

	cfg.Paths.StateDir = stateDir
	cfg.Paths.LogPath = filepath.Join(stateDir, "speechbox.log")
	cfg.Paths.TranscriptPath = filepath.Join(stateDir, "transcripts.log")
	cfg.Paths.PidPath = filepath.Join(stateDir, "speechbox.pid")

	cfg.Transcripts.Enabled = true

	return cfg, nil
}

// Load loads config from file, applying defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, defaultConfigDir, "config.toml")
	}

	// Read if exists; otherwise write template.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, err
			}
			if err := Save(cfg, path); err != nil {
				return nil, err
			}
			cfg.Paths.ConfigPath = path
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Paths.ConfigPath = path
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

func isMac() bool {
	return runtime.GOOS == "darwin"
}

// MustStatePaths ensures state dirs exist.
func MustStatePaths(cfg *Config) error {
	for _, p := range []string{cfg.Paths.StateDir, filepath.Dir(cfg.Paths.LogPath), filepath.Dir(cfg.Paths.TranscriptPath)} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SPEECHBOX_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("SPEECHBOX_ENGINE"); v != "" {
		cfg.ASR.Engine = strings.ToLower(v)
	}
	if v := os.Getenv("SPEECHBOX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SPEECHBOX_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SPEECHBOX_TRANSCRIPTS_ENABLED"); v != "" {
		cfg.Transcripts.Enabled = v != "0" && strings.ToLower(v) != "false"
	}
	if v := os.Getenv("SPEECHBOX_TRIM_SILENCE"); v != "" {
		cfg.Audio.TrimVAD = v != "0" && strings.ToLower(v) != "false"
	}
}
