package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"speechbox/internal/audio"
	"speechbox/internal/config"
	"speechbox/internal/logging"
	"speechbox/internal/model"
	"speechbox/internal/speak"
	"speechbox/internal/transcribe"

	"github.com/spf13/cobra"
)

// NewTranscribeCmd transcribes an audio file and prints the text.
func NewTranscribeCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			file := args[0]
			if !audio.SupportedExtension(file) {
				return fmt.Errorf("unsupported file type %q (allowed: wav, mp3, ogg, m4a)", filepath.Ext(file))
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			samples, err := audio.DecodeUpload(file, data, cfg.Audio.SampleRate)
			if err != nil {
				return err
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
			if wantCount, _ := cmd.Flags().GetBool("count"); wantCount {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "words: %d\n", speak.WordCount(text))
			}
			return nil
		},
	}
	cmd.Flags().Bool("count", false, "also print the word count")
	return cmd
}
