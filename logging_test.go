package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/meshfield/internal/game"
)

func TestSetupLogging_Stderr(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := setupLogging("", false)
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, os.Stderr, log.Writer())
	assert.False(t, game.Verbose)
}

func TestSetupLogging_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer func() { game.Verbose = false }()

	path := filepath.Join(t.TempDir(), "logs", "meshfield.log")
	f, err := setupLogging(path, true)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	assert.True(t, game.Verbose)
	log.Println("Test log message")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size(), "log file has content")
}

func TestReportExit_StderrOnlyOnce(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	reportExit(nil, errors.New("run game: boom"))
	assert.Empty(t, logged.String(), "stderr copy only when logs are not redirected")

	path := filepath.Join(t.TempDir(), "meshfield.log")
	f, err := setupLogging(path, false)
	require.NoError(t, err)
	defer f.Close()

	reportExit(f, errors.New("run game: boom"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exit: run game: boom")
}
