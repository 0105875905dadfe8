package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Auth attempt status
const (
	AuthSuccess = "Success"
	AuthFail    = "Fail"
)

var (
	authMu      sync.Mutex
	authEnabled bool
	authLogPath = filepath.Join("log", "auth.log")
)

// EnableAuthLog turn auth attempt file log on or off
func EnableAuthLog(enabled bool) {
	authMu.Lock()
	defer authMu.Unlock()
	authEnabled = enabled
}

// SetAuthLogPath change the file auth attempts are appended to
func SetAuthLogPath(path string) {
	authMu.Lock()
	defer authMu.Unlock()
	authLogPath = path
}

// LogAuthAttempt appends an authentication attempt record to the auth log file
// and mirrors it to Log.
// Fields: timestamp (RFC3339) | level | authType | status | identifier? | message?
func LogAuthAttempt(level string, authType string, status string, identifier string, message string) {
	entry := Log.WithFields(map[string]any{
		"auth_type":  authType,
		"status":     status,
		"identifier": identifier,
	})
	if status == AuthFail {
		entry.Warn(message)
	} else {
		entry.Debug(message)
	}

	authMu.Lock()
	defer authMu.Unlock()
	if !authEnabled {
		return
	}

	if err := os.MkdirAll(filepath.Dir(authLogPath), 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(authLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	ts := time.Now().UTC().Format(time.RFC3339)
	parts := []string{ts, level, authType, status}
	if identifier != "" {
		parts = append(parts, identifier)
	}
	if message != "" {
		parts = append(parts, message)
	}
	_, _ = f.WriteString(strings.Join(parts, " | ") + "\n")
}
