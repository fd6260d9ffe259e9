package cli

import (
	"fmt"

	"speechbox/internal/audio"
	"speechbox/internal/config"
	"speechbox/internal/logging"
	"speechbox/internal/model"
	"speechbox/internal/speak"
	"speechbox/internal/transcribe"

	"github.com/spf13/cobra"
)

// NewRecordCmd records a window from the mic, transcribes, and prints the text.
func NewRecordCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record from the microphone and transcribe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if sec, _ := cmd.Flags().GetInt("seconds"); sec > 0 {
				cfg.Audio.RecordSec = sec
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("recording %ds...\n", cfg.Audio.RecordSec)
			samples, err := audio.Record(cfg, logger)
			if err != nil {
				return err
			}
			if cfg.Audio.TrimVAD {
				trimmed, err := audio.TrimSilence(samples, cfg.Audio.SampleRate, cfg.Audio.FrameMS, cfg.Audio.VADMode)
				if err != nil {
					logger.Warnf("silence trim: %v", err)
				} else {
					samples = trimmed
				}
			}

			loader := model.NewWhisper(cfg.ASR.ModelPath)
			defer func() { _ = loader.Close() }()
			rec, err := transcribe.ForConfig(cfg, logger, loader)
			if err != nil {
				return err
			}
			text, err := rec.Transcribe(cmd.Context(), samples)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)

			if repeat, _ := cmd.Flags().GetBool("repeat"); repeat && speak.WordCount(text) > 0 {
				synth, err := speak.NewLocal(cfg, logger)
				if err != nil {
					return err
				}
				return synth.Speak(cmd.Context(), text)
			}
			return nil
		},
	}
	cmd.Flags().Int("seconds", 0, "recording duration (default from config)")
	cmd.Flags().Bool("repeat", false, "speak the transcript back after recording")
	return cmd
}
