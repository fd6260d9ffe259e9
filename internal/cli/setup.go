package cli

import (
	"fmt"
	"os"

	"speechbox/internal/config"

	"github.com/spf13/cobra"
)

// NewSetupCmd downloads the default model if missing.
func NewSetupCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Download default whisper model if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			modelPath := os.ExpandEnv(cfg.ASR.ModelPath)
			if _, err := os.Stat(modelPath); err == nil {
				fmt.Println("model already present at", modelPath)
				return nil
			}
			fmt.Printf("downloading %s to %s\n", defaultModel, modelPath)
			if err := downloadFile(modelRegistry[defaultModel], modelPath); err != nil {
				return err
			}
			fmt.Println("model download complete")
			return nil
		},
	}
}
