package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"speechbox/internal/config"
	"speechbox/internal/session"
	"speechbox/internal/speak"

	"github.com/sirupsen/logrus"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Transcribe(_ context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	return f.text, f.err
}

type fakeSynth struct {
	calls int
}

func (f *fakeSynth) Name() string { return "fake-say" }

func (f *fakeSynth) Speak(_ context.Context, text string) error {
	if text == "" {
		return speak.ErrEmptyText
	}
	f.calls++
	return nil
}

func testServer(t *testing.T, rec *fakeRecognizer, synth *fakeSynth) *Server {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Audio.TrimVAD = false
	cfg.Transcripts.Enabled = false
	orch := session.NewOrchestrator(cfg, logrus.New(), rec, synth)
	orch.SetRecorder(func() ([]float32, error) {
		return make([]float32, cfg.Audio.RecordSec*cfg.Audio.SampleRate), nil
	})
	return NewServer(cfg, logrus.New(), orch)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestTranscribeWithoutFileWarns(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{}, &fakeSynth{})
	body, ctype := multipartUpload(t, "other", "x.bin", []byte{1})

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", ctype)
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp.OK || resp.Warning == "" {
		t.Fatalf("expected warning, got %+v", resp)
	}
}

func TestTranscribeRejectsUnknownExtension(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{}, &fakeSynth{})
	body, ctype := multipartUpload(t, "audio", "notes.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", ctype)
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}

func TestRecordReturnsTranscriptAndWordCount(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{text: "hello world"}, &fakeSynth{})

	req := httptest.NewRequest(http.MethodPost, "/api/record", nil)
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if !resp.OK || resp.Text != "hello world" || resp.Words != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRecordEngineFailure(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{err: errors.New("model exploded")}, &fakeSynth{})

	req := httptest.NewRequest(http.MethodPost, "/api/record", nil)
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp.OK || !strings.Contains(resp.Error, "Error transcribing audio") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSpeakEmptyTextWarns(t *testing.T) {
	synth := &fakeSynth{}
	srv := testServer(t, &fakeRecognizer{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/api/speak", strings.NewReader(`{"text":""}`))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	resp := decodeResponse(t, rr)
	if resp.OK || resp.Warning == "" {
		t.Fatalf("expected warning, got %+v", resp)
	}
	if synth.calls != 0 {
		t.Fatalf("synth invoked for empty text")
	}
}

func TestSpeakInvokesSynthOnce(t *testing.T) {
	synth := &fakeSynth{}
	srv := testServer(t, &fakeRecognizer{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/api/speak", strings.NewReader(`{"text":"hello world"}`))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	resp := decodeResponse(t, rr)
	if !resp.OK || resp.Words != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if synth.calls != 1 {
		t.Fatalf("synth calls %d, want 1", synth.calls)
	}
}

func TestSnippetWordCount(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{}, &fakeSynth{})

	req := httptest.NewRequest(http.MethodPost, "/api/snippet", strings.NewReader(`{"text":"hello world"}`))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	resp := decodeResponse(t, rr)
	if !resp.OK || resp.Words != 2 || resp.Snippet == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestStatusReportsSession(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{text: "stored"}, &fakeSynth{})
	router := srv.Routes()

	// First action mints a session cookie.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/record", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var st Status
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !st.Running || st.Session == nil {
		t.Fatalf("unexpected status %+v", st)
	}
	// The displayed transcript survives re-render: same session, same text.
	if st.Session.Transcript != "stored" {
		t.Fatalf("transcript not retained: %+v", st.Session)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{}, &fakeSynth{})
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	srv := testServer(t, &fakeRecognizer{text: "x"}, &fakeSynth{})
	router := srv.Routes()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/record", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "speechbox_recordings_total 1") {
		t.Fatalf("metrics missing counter: %s", rr.Body.String())
	}
}
