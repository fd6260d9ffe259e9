//go:build !whisper

package model

import "errors"

// NewWhisper returns a Loader that always fails; the local engine
// requires building with -tags whisper (whisper.cpp + cgo).
func NewWhisper(path string) *Loader {
	return New(path, func(string) (Handle, error) {
		return nil, errors.New("local engine unavailable: build with -tags whisper")
	})
}
