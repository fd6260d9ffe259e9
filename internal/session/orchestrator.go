package session

import (
	"context"
	"fmt"

	"speechbox/internal/audio"
	"speechbox/internal/config"
	"speechbox/internal/speak"
	"speechbox/internal/transcribe"

	"github.com/sirupsen/logrus"
)

// Orchestrator maps UI actions onto the audio, transcription, and speech
// services and stores results in the session so a displayed transcript
// survives re-render.
type Orchestrator struct {
	cfg    *config.Config
	logger *logrus.Logger
	rec    transcribe.Recognizer
	synth  speak.Synthesizer

	// record is audio.Record in production, a fake in tests.
	record func() ([]float32, error)
}

// NewOrchestrator wires the services together.
func NewOrchestrator(cfg *config.Config, logger *logrus.Logger, rec transcribe.Recognizer, synth speak.Synthesizer) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		logger: logger,
		rec:    rec,
		synth:  synth,
	}
	o.record = func() ([]float32, error) {
		return audio.Record(cfg, logger)
	}
	return o
}

// EngineName names the active recognizer.
func (o *Orchestrator) EngineName() string { return o.rec.Name() }

// SetRecorder overrides the microphone capture function.
func (o *Orchestrator) SetRecorder(fn func() ([]float32, error)) { o.record = fn }

// TranscribeUpload decodes an uploaded file and stores the transcript.
func (o *Orchestrator) TranscribeUpload(ctx context.Context, sess *Session, filename string, data []byte) (string, error) {
	if err := sess.begin(PhaseUploading); err != nil {
		return "", err
	}
	ok := false
	defer func() { sess.finish(ok) }()

	samples, err := audio.DecodeUpload(filename, data, o.cfg.Audio.SampleRate)
	if err != nil {
		return "", err
	}

	sess.setPhase(PhaseTranscribing)
	o.logger.Infof("transcribing upload %q (%d samples) via %s", filename, len(samples), o.rec.Name())
	text, err := o.rec.Transcribe(ctx, samples)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	sess.setTranscript(text)
	ok = true
	return text, nil
}

// RecordAndTranscribe captures the fixed recording window, trims silence,
// and stores both the recording and its transcript.
func (o *Orchestrator) RecordAndTranscribe(ctx context.Context, sess *Session) (string, error) {
	if err := sess.begin(PhaseRecording); err != nil {
		return "", err
	}
	ok := false
	defer func() { sess.finish(ok) }()

	samples, err := o.record()
	if err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	sess.setRecording(samples)

	if o.cfg.Audio.TrimVAD {
		trimmed, err := audio.TrimSilence(samples, o.cfg.Audio.SampleRate, o.cfg.Audio.FrameMS, o.cfg.Audio.VADMode)
		if err != nil {
			o.logger.Warnf("silence trim: %v", err)
		} else {
			samples = trimmed
		}
	}

	sess.setPhase(PhaseTranscribing)
	text, err := o.rec.Transcribe(ctx, samples)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	sess.setTranscript(text)
	ok = true
	return text, nil
}

// Speak reads text aloud through the local synthesis engine.
func (o *Orchestrator) Speak(ctx context.Context, sess *Session, text string) error {
	if err := sess.begin(PhaseSpeaking); err != nil {
		return err
	}
	ok := false
	defer func() { sess.finish(ok) }()

	if err := o.synth.Speak(ctx, text); err != nil {
		return err
	}
	ok = true
	return nil
}

// RecordAndRepeat records, transcribes, then speaks the transcript back.
func (o *Orchestrator) RecordAndRepeat(ctx context.Context, sess *Session) (string, error) {
	text, err := o.RecordAndTranscribe(ctx, sess)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}
	if err := o.Speak(ctx, sess, text); err != nil {
		return text, err
	}
	return text, nil
}
