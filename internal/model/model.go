package model

import (
	"fmt"
	"sync"
)

// Handle is an opaque reference to a loaded recognition model.
type Handle interface {
	Close() error
}

// LoadFunc opens the model stored at path.
type LoadFunc func(path string) (Handle, error)

// Loader memoizes a model handle for the lifetime of the process.
// Get initializes on first use and returns the same handle on every
// subsequent call; Close releases it at process exit.
type Loader struct {
	path string
	load LoadFunc

	once   sync.Once
	handle Handle
	err    error
}

// New returns a Loader that opens path with load on first Get.
func New(path string, load LoadFunc) *Loader {
	return &Loader{path: path, load: load}
}

// Get returns the memoized handle, loading it on the first call.
func (l *Loader) Get() (Handle, error) {
	l.once.Do(func() {
		l.handle, l.err = l.load(l.path)
		if l.err != nil {
			l.err = fmt.Errorf("load model %s: %w", l.path, l.err)
		}
	})
	return l.handle, l.err
}

// Close releases the handle if it was ever loaded.
func (l *Loader) Close() error {
	if l.handle == nil {
		return nil
	}
	return l.handle.Close()
}
