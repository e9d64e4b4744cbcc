package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neptune-T/OS-Simulation-Platform/config"
)

func TestInitialize(t *testing.T) {
	Initialize(&config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"})
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, GetLogger().Formatter)

	Initialize(&config.LoggingConfig{Level: "loud", Format: "xml", Output: "stdout"})
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, GetLogger().Formatter)
}

func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ossim.log")
	Initialize(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	GetLogger().WithField("pid", 1).Info("process dispatched")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"process dispatched"`)
	assert.Contains(t, string(data), `"pid":1`)
}

func TestInitializeReplacesLogFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	Initialize(&config.LoggingConfig{Level: "loud", Format: "json", Output: first})
	firstFile := file
	require.NotNil(t, firstFile)

	second := filepath.Join(dir, "second.log")
	Initialize(&config.LoggingConfig{Level: "debug", Format: "text", Output: second})
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	GetLogger().Debug("config reloaded")

	_, err := firstFile.(*os.File).Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), `unknown log level \"loud\"`)
	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config reloaded")

	require.NoError(t, Close())
	assert.Nil(t, file)
	assert.Equal(t, os.Stderr, GetLogger().Out)
	require.NoError(t, Close())
}

func TestInitializeUnwritableFile(t *testing.T) {
	Initialize(&config.LoggingConfig{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Nil(t, file)
	assert.Equal(t, os.Stdout, GetLogger().Out)
}
