// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, DEBUG, LevelFromString("Debug"))
	assert.Equal(t, WARN, LevelFromString("warning"))
	assert.Equal(t, FATAL, LevelFromString("critical"))
	assert.Equal(t, INFO, LevelFromString("nonsense"))
}

func TestManagerReplaceCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := newManager()
	m.ReplaceCore(core)

	m.log(ERROR, "Failed to render %s for file attachment %d", "XML", 42)
	m.log(DEBUG, "debug %s", "entry")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Failed to render XML for file attachment 42", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestManagerConfigureFile(t *testing.T) {
	m := newManager()
	path := filepath.Join(t.TempDir(), "preview.log")

	require.NoError(t, m.Configure(Config{Level: "warn", Mode: "file", FileName: path}))
	assert.False(t, m.level.Enabled(zapcore.InfoLevel))
	assert.True(t, m.level.Enabled(zapcore.WarnLevel))
	m.Close()

	assert.Error(t, m.Configure(Config{Mode: "file"}))
	assert.Error(t, m.Configure(Config{Mode: "syslog"}))
}
