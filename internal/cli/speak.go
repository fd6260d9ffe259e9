package cli

import (
	"errors"
	"fmt"

	"speechbox/internal/config"
	"speechbox/internal/logging"
	"speechbox/internal/speak"

	"github.com/spf13/cobra"
)

// NewSpeakCmd speaks a line of text through the local engine.
func NewSpeakCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak \"some text\"",
		Short: "Speak text through the local speech engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if rate, _ := cmd.Flags().GetInt("rate"); rate > 0 {
				cfg.Speak.RateWPM = rate
			}
			logger, err := logging.Configure(cfg)
			if err != nil {
				return err
			}
			synth, err := speak.NewLocal(cfg, logger)
			if err != nil {
				return err
			}
			if err := synth.Speak(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, speak.ErrEmptyText) {
					fmt.Println("nothing to speak")
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int("rate", 0, "speech rate in words per minute (default from config)")
	return cmd
}
