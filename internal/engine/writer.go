package engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteSession persists the session's buffer if and only if it changed,
// returning whether a write occurred.
func WriteSession(s *Session) (bool, error) {
	if !s.Changed() {
		return false, nil
	}
	if err := writeFileAtomic(s.Path, s.Content()); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileAtomic writes data via a temp file in the target directory and
// renames it over the original. Прерванный посреди записи процесс не оставит
// полузаписанный исходник — либо старое содержимое, либо новое.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tsmend-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := f.Name()
	defer func() {
		// no-op после успешного rename
		_ = os.Remove(tmpName)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp over %s: %w", path, err)
	}
	return nil
}
