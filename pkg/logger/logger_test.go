package logger_test

import (
	"errors"
	"testing"

	"devconnector/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	logger.LogError("Could not save profile", errors.New("disk full"), logrus.Fields{"path": "/api/profile"})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Could not save profile", entry.Message)
	assert.Equal(t, "disk full", entry.Data["error"])
	assert.Equal(t, "/api/profile", entry.Data["path"])
}

func TestLogError_NilFields(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	logger.LogError("shutdown failed", errors.New("boom"), nil)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "boom", hook.LastEntry().Data["error"])
}
