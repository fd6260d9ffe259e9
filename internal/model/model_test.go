package model

import (
	"errors"
	"testing"
)

type fakeHandle struct{ closed bool }

func (f *fakeHandle) Close() error {
	f.closed = true
	return nil
}

func TestGetMemoizesHandle(t *testing.T) {
	calls := 0
	l := New("/tmp/model.bin", func(string) (Handle, error) {
		calls++
		return &fakeHandle{}, nil
	})

	h1, err := l.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	h2, err := l.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical handle across calls")
	}
	if calls != 1 {
		t.Fatalf("load called %d times, want 1", calls)
	}
}

func TestGetMemoizesError(t *testing.T) {
	calls := 0
	sentinel := errors.New("no such model")
	l := New("/nope.bin", func(string) (Handle, error) {
		calls++
		return nil, sentinel
	})

	if _, err := l.Get(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if _, err := l.Get(); !errors.Is(err, sentinel) {
		t.Fatalf("expected same error on retry, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("load called %d times, want 1", calls)
	}
}

func TestCloseWithoutGet(t *testing.T) {
	l := New("/tmp/model.bin", func(string) (Handle, error) {
		t.Fatal("load should not run")
		return nil, nil
	})
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCloseReleasesHandle(t *testing.T) {
	fh := &fakeHandle{}
	l := New("/tmp/model.bin", func(string) (Handle, error) { return fh, nil })
	if _, err := l.Get(); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !fh.closed {
		t.Fatalf("handle not closed")
	}
}
