package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const ffmpegTimeout = 60 * time.Second

func ffmpegPath() (string, error) {
	return exec.LookPath("ffmpeg")
}

// ffmpegDecode converts any ffmpeg-readable file into mono float32 samples
// at sampleRate by streaming raw f32le PCM over stdout.
func ffmpegDecode(path string, sampleRate int) ([]float32, error) {
	bin, err := ffmpegPath()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found (needed for non-WAV uploads): %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ffmpegTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin,
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "f32le",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-",
	)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(errBuf.String())
		if detail != "" {
			return nil, fmt.Errorf("ffmpeg decode: %s", detail)
		}
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}
	return bytesToFloat32(out.Bytes()), nil
}

func bytesToFloat32(raw []byte) []float32 {
	n := len(raw) / 4
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}
