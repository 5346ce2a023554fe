package logging

import (
	"fmt"
	"os"
	"sync"
)

// FileWriter is the io.Writer behind file sinks. It appends to a single file
// and, by default, syncs after every write so a follower sees lines at once.
type FileWriter struct {
	path string

	mu            sync.Mutex
	file          *os.File
	immediateSync bool
}

// CreateFileWriter creates path and fails if it already exists.
// The returned error wraps os.ErrExist in that case.
func CreateFileWriter(path string) (*FileWriter, error) {
	return openFileWriter(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND)
}

// OpenFileWriter opens path for appending, creating it when missing.
func OpenFileWriter(path string) (*FileWriter, error) {
	return openFileWriter(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

func openFileWriter(path string, flag int) (*FileWriter, error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &FileWriter{
		path:          path,
		file:          f,
		immediateSync: true,
	}, nil
}

// SetImmediateSync enables or disables the sync after each write.
func (w *FileWriter) SetImmediateSync(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.immediateSync = enabled
}

// Write implements io.Writer.
func (w *FileWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}

	n, err = w.file.Write(p)
	if w.immediateSync && err == nil {
		_ = w.file.Sync()
	}
	return n, err
}

// Sync flushes the file to disk.
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Sync()
	}
	return nil
}

// Close closes the underlying file. Further writes fail with os.ErrClosed.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Path returns the file path.
func (w *FileWriter) Path() string {
	return w.path
}
