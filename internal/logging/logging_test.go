package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	require.NoError(t, Configure("warn", "text"))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)

	assert.Error(t, Configure("loud", "text"))
}

func TestLogAuthAttempt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "auth.log")
	SetAuthLogPath(path)

	EnableAuthLog(false)
	LogAuthAttempt("info", "Google", AuthSuccess, "a@example.com", "")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	EnableAuthLog(true)
	t.Cleanup(func() { EnableAuthLog(false) })

	LogAuthAttempt("info", "Google", AuthSuccess, "a@example.com", "")
	LogAuthAttempt("warning", "Google", AuthFail, "", "code exchange failed")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " | info | Google | Success | a@example.com"))
	assert.True(t, strings.HasSuffix(lines[1], " | warning | Google | Fail | code exchange failed"))
}
