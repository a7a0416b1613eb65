package localsync

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// streamError marks a failure of the remote side of a streamed write, as opposed to our own
// file handling.
type streamError struct {
	err error
}

func (s *streamError) Error() string { return s.err.Error() }
func (s *streamError) Unwrap() error { return s.err }

func (e *Engine) writeFile(abs string, contents []byte) error {
	directory := filepath.Dir(abs)

	// MkdirAll is fine with the directory already being there, which happens a lot when a
	// batch writes a whole folder at once.
	if err := e.Fs.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("localsync: couldn't create directory %s: %w", directory, err)
	}

	if err := afero.WriteFile(e.Fs, abs, contents, 0644); err != nil {
		return fmt.Errorf("localsync: couldn't write to file %s: %w", abs, err)
	}

	return nil
}

// writeStream fills a temporary file next to abs and only moves it into place once fill has
// returned successfully, so a failed download never leaves a half-written file behind.  Errors
// from fill come back as *streamError.
func (e *Engine) writeStream(abs string, fill func(w io.Writer) error) error {
	directory := filepath.Dir(abs)
	if err := e.Fs.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("localsync: couldn't create directory %s: %w", directory, err)
	}

	tmp, err := afero.TempFile(e.Fs, directory, ".voog-kit-*")
	if err != nil {
		return fmt.Errorf("localsync: couldn't create temporary file in %s: %w", directory, err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = e.Fs.Remove(tmpPath)
		return &streamError{err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = e.Fs.Remove(tmpPath)
		return fmt.Errorf("localsync: couldn't finalize %s: %w", tmpPath, err)
	}

	if err := e.Fs.Rename(tmpPath, abs); err != nil {
		_ = e.Fs.Remove(tmpPath)
		return fmt.Errorf("localsync: couldn't move download into %s: %w", abs, err)
	}

	return nil
}
