package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"speechbox/internal/audio"
	"speechbox/internal/session"
	"speechbox/internal/speak"
)

type apiResponse struct {
	OK      bool   `json:"ok"`
	Text    string `json:"text,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
	Words   int    `json:"word_count,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

type textRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessionFor(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "ok"})
}

// handleTranscribe accepts a multipart audio upload and returns its
// transcript. Missing file is a warning, not an error.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "malformed upload: " + err.Error()})
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusOK, apiResponse{Warning: "No audio uploaded. Please upload an audio file."})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "read upload: " + err.Error()})
		return
	}

	s.metrics.incUploads()
	text, err := s.orch.TranscribeUpload(r.Context(), sess, header.Filename, data)
	if err != nil {
		s.transcribeError(w, err)
		return
	}
	s.recordTranscript(text)
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Text: text, Words: speak.WordCount(text)})
}

// handleRecord captures the fixed recording window and transcribes it.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	s.metrics.incRecordings()
	text, err := s.orch.RecordAndTranscribe(r.Context(), sess)
	if err != nil {
		s.transcribeError(w, err)
		return
	}
	s.recordTranscript(text)
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Text: text, Words: speak.WordCount(text)})
}

// handleRepeat records, transcribes, and speaks the result back.
func (s *Server) handleRepeat(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	s.metrics.incRecordings()
	text, err := s.orch.RecordAndRepeat(r.Context(), sess)
	if err != nil {
		s.transcribeError(w, err)
		return
	}
	s.metrics.incSpeaks()
	s.recordTranscript(text)
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Text: text, Words: speak.WordCount(text)})
}

// handleSpeak reads the submitted text aloud on the host.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "malformed request: " + err.Error()})
		return
	}

	err := s.orch.Speak(r.Context(), sess, req.Text)
	switch {
	case errors.Is(err, speak.ErrEmptyText):
		writeJSON(w, http.StatusOK, apiResponse{Warning: "No text to speak. Please enter some text."})
	case errors.Is(err, session.ErrBusy):
		writeJSON(w, http.StatusConflict, apiResponse{Error: err.Error()})
	case err != nil:
		s.metrics.incFailures()
		s.logger.Errorf("speak: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "Error speaking text: " + err.Error()})
	default:
		s.metrics.incSpeaks()
		writeJSON(w, http.StatusOK, apiResponse{OK: true, Words: speak.WordCount(req.Text)})
	}
}

// handleSnippet returns browser-TTS markup for the submitted text plus its
// word count. The text travels as data only; rendering escapes it.
func (s *Server) handleSnippet(w http.ResponseWriter, r *http.Request) {
	s.sessionFor(w, r)

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "malformed request: " + err.Error()})
		return
	}
	if speak.WordCount(req.Text) == 0 {
		writeJSON(w, http.StatusOK, apiResponse{Warning: "No text to speak. Please enter some text."})
		return
	}
	markup, err := RenderSnippet(req.Text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Snippet: markup, Words: speak.WordCount(req.Text)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	snap := sess.Snapshot()
	writeJSON(w, http.StatusOK, Status{
		Running:     true,
		Engine:      s.orch.EngineName(),
		UptimeSec:   time.Since(s.startedAt).Seconds(),
		Session:     &snap,
		Transcripts: s.copyTranscripts(),
	})
}

func (s *Server) transcribeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, audio.ErrNoAudio):
		writeJSON(w, http.StatusOK, apiResponse{Warning: "No audio uploaded. Please upload an audio file."})
	case errors.Is(err, audio.ErrUnsupportedFormat):
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: err.Error()})
	case errors.Is(err, session.ErrBusy):
		writeJSON(w, http.StatusConflict, apiResponse{Error: err.Error()})
	default:
		s.metrics.incFailures()
		s.logger.Errorf("transcribe: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "Error transcribing audio: " + err.Error()})
	}
}
