package main

import (
	"fmt"
	"os"

	"speechbox/internal/cli"
	"speechbox/internal/daemon"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env may carry OPENAI_API_KEY and SPEECHBOX_* overrides.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "speechbox",
		Short: "Speechbox — speech-to-text and text-to-speech web app",
		Long: `Speechbox serves a small web UI for turning speech into text and text back into speech.
Upload an audio file or record a fixed window from the mic, transcribe it locally with
whisper.cpp (or via the OpenAI API), and optionally speak the transcript back through
the local speech engine or a browser snippet.

Key commands:
  start|stop|restart        Server lifecycle
  serve                     Run server in the foreground
  status [--json]           Uptime + last transcripts
  transcribe <file>         One-shot file transcription
  record [--repeat]         One-shot mic recording + transcription
  speak "text"              Speak text through the local engine
  mic list|set              Select microphone (alias: microphone, mics)
  doctor|setup              Check deps / download default model
  models list|download|set  Manage whisper.cpp models
  health|tail-log           Liveness ping, log tail

Notable flags/env:
  --listen-addr <addr>      Listen address (default 127.0.0.1:8973)
  --engine local|openai     Transcription engine for this run
  Env overrides: SPEECHBOX_LISTEN_ADDR, SPEECHBOX_ENGINE,
                 SPEECHBOX_LOG_LEVEL/FORMAT, SPEECHBOX_TRANSCRIPTS_ENABLED,
                 SPEECHBOX_TRIM_SILENCE, OPENAI_API_KEY`,
		Example: `  speechbox start --listen-addr 127.0.0.1:8973
  speechbox transcribe note.mp3 --count
  speechbox record --repeat
  speechbox speak "hello there"
  speechbox mic list
  speechbox models download ggml-tiny.bin
  speechbox health`,
		DisableFlagsInUseLine: true,
	}

	root.Version = version
	root.SetVersionTemplate("Speechbox v{{.Version}}\n")

	cfgPath := root.PersistentFlags().StringP("config", "c", "", "Path to config file (TOML). Defaults to ~/.config/speechbox/config.toml")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(daemon.NewStartCmd(cfgPath))
	root.AddCommand(daemon.NewStopCmd(cfgPath))
	root.AddCommand(daemon.NewRestartCmd(cfgPath))
	root.AddCommand(daemon.NewServeCmd(cfgPath))
	root.AddCommand(cli.NewStatusCmd(cfgPath))
	root.AddCommand(cli.NewHealthCmd(cfgPath))
	root.AddCommand(cli.NewTailLogCmd(cfgPath))
	root.AddCommand(cli.NewTranscribeCmd(cfgPath))
	root.AddCommand(cli.NewRecordCmd(cfgPath))
	root.AddCommand(cli.NewSpeakCmd(cfgPath))
	root.AddCommand(cli.NewMicCmd(cfgPath))
	root.AddCommand(cli.NewModelsCmd(cfgPath))
	root.AddCommand(cli.NewSetupCmd(cfgPath))
	root.AddCommand(cli.NewDoctorCmd(cfgPath))

	applyColorHelp(root)

	if err := root.Execute(); err != nil {
		return err
	}
	return nil
}

func applyColorHelp(root *cobra.Command) {
	const (
		boldBlue = "\033[1;34m"
		green    = "\033[32m"
		bold     = "\033[1m"
		dim      = "\033[2m"
		reset    = "\033[0m"
	)
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		write := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }
		writeln := func(line string) { _, _ = fmt.Fprintln(out, line) }

		write("%sSpeechbox%s — speech-to-text and text-to-speech web app %s(v%s)%s\n", boldBlue, reset, dim, version, reset)
		write("%sServes a web UI for transcribing uploads or mic recordings and speaking them back.%s\n\n", dim, reset)

		write("%sUsage%s\n", bold, reset)
		write("  speechbox [command] [flags]\n\n")

		write("%sKey commands%s\n", bold, reset)
		writeln("  start|stop|restart          server lifecycle")
		writeln("  serve                       run server in the foreground")
		writeln("  status [--json]             uptime + last transcripts")
		writeln("  transcribe <file>           one-shot file transcription")
		writeln("  record [--repeat]           one-shot mic recording + transcription")
		writeln("  speak \"text\"               speak text through the local engine")
		writeln("  mic list|set                select input device (alias: microphone, mics)")
		writeln("  doctor                      check deps/model/speech engine/portaudio")
		writeln("  setup                       download default whisper model")
		writeln("  models list|download|set    manage whisper.cpp models")
		writeln("  health                      liveness ping over HTTP")
		writeln("  tail-log                    show last log lines")
		writeln("")

		write("%sNotable flags & env%s\n", bold, reset)
		writeln("  --listen-addr <addr>    listen address (default 127.0.0.1:8973)")
		writeln("  --engine local|openai   transcription engine for this run")
		writeln("  -c, --config <path>     config file (default ~/.config/speechbox/config.toml)")
		writeln("  Env: SPEECHBOX_LISTEN_ADDR=host:port, SPEECHBOX_ENGINE=openai,")
		writeln("       SPEECHBOX_LOG_LEVEL=debug, SPEECHBOX_LOG_FORMAT=json,")
		writeln("       SPEECHBOX_TRANSCRIPTS_ENABLED=0, SPEECHBOX_TRIM_SILENCE=0,")
		writeln("       OPENAI_API_KEY=sk-...")
		writeln("")

		write("%sExamples%s\n", bold, reset)
		writeln("  speechbox start --listen-addr 127.0.0.1:8973")
		writeln("  speechbox transcribe note.mp3 --count")
		writeln("  speechbox record --repeat")
		writeln("  speechbox speak \"hello there\"")
		writeln("  speechbox models download ggml-tiny.bin")
		writeln("  speechbox models set ggml-tiny.bin")
		writeln("  speechbox health")
		writeln("")

		write("%sCommands%s\n", bold, reset)
		for _, c := range cmd.Commands() {
			if c.Hidden {
				continue
			}
			write("  %s%-15s%s %s\n", green, c.Name(), reset, c.Short)
		}
	})
}
