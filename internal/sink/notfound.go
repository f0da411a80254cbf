package sink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// NotFoundLog records names whose profile search produced no result,
// one name per line.
type NotFoundLog struct {
	path string
}

// NewNotFoundLog returns a log writing to path.
func NewNotFoundLog(path string) *NotFoundLog {
	return &NotFoundLog{path: path}
}

// Append records one name.
func (l *NotFoundLog) Append(name string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening not-found log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, name); err != nil {
		return fmt.Errorf("writing not-found log: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing not-found log: %w", err)
	}
	return nil
}

// ReadNotFound returns the recorded names. A missing file yields an
// empty list.
func ReadNotFound(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening not-found log: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading not-found log: %w", err)
	}
	return names, nil
}
