package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FileLogger appends entries as JSON lines to a local file.
type FileLogger struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFileLogger opens (or creates) the audit file in append mode.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file %s: %w", path, err)
	}
	return &FileLogger{f: f, path: path}, nil
}

// Write appends one JSON line. Failures are logged, never returned.
func (l *FileLogger) Write(entry Entry) {
	stamp(&entry)

	line, err := json.Marshal(entry)
	if err != nil {
		log.Warnf("audit: failed to marshal entry for %s: %v", entry.Endpoint, err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(append(line, '\n')); err != nil {
		log.Warnf("audit: failed to append to %s: %v", l.path, err)
	}
}

func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
