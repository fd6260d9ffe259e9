//go:build whisper

package audio

import (
	"errors"
	"fmt"
	"strings"

	"speechbox/internal/config"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// Record captures a fixed-duration mono window from the configured (or
// default) input device. Blocking for the whole window; the result holds
// exactly record_sec * sample_rate samples.
func Record(cfg *config.Config, logger *logrus.Logger) ([]float32, error) {
	if cfg.Audio.Channels != 1 {
		return nil, fmt.Errorf("only mono input supported; set audio.channels = 1")
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	dev, err := selectDevice(cfg.Audio.DeviceName)
	if err != nil {
		return nil, err
	}

	frameSamples := cfg.Audio.SampleRate * cfg.Audio.FrameMS / 1000
	if frameSamples <= 0 {
		return nil, fmt.Errorf("invalid frame_ms %d for sample_rate %d", cfg.Audio.FrameMS, cfg.Audio.SampleRate)
	}

	buf := make([]int16, frameSamples)
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: cfg.Audio.Channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.Audio.SampleRate),
		FramesPerBuffer: frameSamples,
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start stream: %w", err)
	}
	defer func() { _ = stream.Stop() }()

	logger.Infof("recording %ds on mic: %s @ %d Hz", cfg.Audio.RecordSec, dev.Name, cfg.Audio.SampleRate)

	r := &paFrameReader{stream: stream, buf: buf, logger: logger}
	return captureWindow(r, WindowSamples(cfg.Audio.RecordSec, cfg.Audio.SampleRate))
}

type paFrameReader struct {
	stream *portaudio.Stream
	buf    []int16
	logger *logrus.Logger
}

func (r *paFrameReader) Read() error {
	for {
		err := r.stream.Read()
		if err == nil {
			return nil
		}
		if errors.Is(err, portaudio.InputOverflowed) {
			r.logger.Warn("input overflow")
			continue
		}
		return err
	}
}

func (r *paFrameReader) Buffer() []int16 { return r.buf }

// ListDevices returns the available input devices.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	devs, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	def, _ := portaudio.DefaultInputDevice()
	out := []Device{}
	for i, d := range devs {
		if d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{
			Index:     i,
			Name:      d.Name,
			Channels:  d.MaxInputChannels,
			LatencyMs: d.DefaultLowInputLatency.Seconds() * 1000,
			Default:   def != nil && d.Name == def.Name,
		})
	}
	return out, nil
}

func selectDevice(preferred string) (*portaudio.DeviceInfo, error) {
	devs, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if preferred != "" {
		for _, d := range devs {
			if d.MaxInputChannels > 0 && strings.Contains(strings.ToLower(d.Name), strings.ToLower(preferred)) {
				return d, nil
			}
		}
	}
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		return def, nil
	}
	for _, d := range devs {
		if d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no input devices found")
}
