package doctor

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"speechbox/internal/config"
)

// Result represents a diagnostic check.
type Result struct {
	Name   string
	Pass   bool
	Detail string
}

// Run executes doctor checks.
func Run(cfg *config.Config) []Result {
	results := []Result{
		checkFile("config path", cfg.Paths.ConfigPath),
		checkFile("model file", cfg.ASR.ModelPath),
		checkBinary("ffmpeg", "ffmpeg", "needed for mp3/ogg/m4a uploads"),
		checkSpeechBinary(cfg),
	}
	results = append(results, checkPortAudio())
	return results
}

func checkFile(label, path string) Result {
	if path == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	if _, err := os.Stat(os.ExpandEnv(path)); err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

func checkBinary(label, bin, hint string) Result {
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: bin + " not found (" + hint + ")"}
	}
	return Result{Name: label, Pass: true, Detail: resolved}
}

func checkSpeechBinary(cfg *config.Config) Result {
	bin := strings.TrimSpace(cfg.Speak.Command)
	if bin == "" {
		if runtime.GOOS == "darwin" {
			bin = "say"
		} else {
			bin = "espeak"
		}
	}
	return checkBinary("speech binary", bin, "server-side speech output will fail without it")
}
