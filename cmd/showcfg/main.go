package main

import (
	"fmt"

	"speechbox/internal/config"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	fmt.Printf("engine=%s model=%s listen=%s\n", cfg.ASR.Engine, cfg.ASR.ModelPath, cfg.Server.ListenAddr)
	fmt.Printf("record_sec=%d sample_rate=%d trim_silence=%v\n", cfg.Audio.RecordSec, cfg.Audio.SampleRate, cfg.Audio.TrimVAD)
	fmt.Printf("speak.command=%q rate_wpm=%d\n", cfg.Speak.Command, cfg.Speak.RateWPM)
}
