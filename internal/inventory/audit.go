package inventory

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// AuditLog is the append-only text sink for the per-transaction audit
// trail. Append failures are reported to the caller, who logs and moves on.
type AuditLog interface {
	Append(line string) error
}

// FileAuditLog appends timestamped lines to a local file.
type FileAuditLog struct {
	mu   sync.Mutex
	path string
}

func NewFileAuditLog(path string) *FileAuditLog {
	return &FileAuditLog{path: path}
}

func (f *FileAuditLog) Append(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer fh.Close()

	_, err = fmt.Fprintf(fh, "[%s] %s\n", time.Now().UTC().Format(time.RFC3339), line)
	return err
}

// NopAuditLog discards audit lines; used in tests.
type NopAuditLog struct{}

func (NopAuditLog) Append(string) error { return nil }
