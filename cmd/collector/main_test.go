package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldLens/internal/collector"
	"GoldLens/internal/config"
	"GoldLens/internal/pipeline"
	"GoldLens/internal/recorder"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(fmt.Errorf("retrieve prices: %w", collector.ErrNoPriceData)))
	assert.Equal(t, 1, exitCode(fmt.Errorf("%w: disk full", pipeline.ErrArtifactWrite)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestNewRecorder(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.Formats = []string{"json", "xlsx"}

	rec, err := newRecorder(cfg, true)
	require.NoError(t, err)
	assert.IsType(t, &recorder.NoopRecorder{}, rec)
	_, err = os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(err), "dry run creates no output dir")

	rec, err = newRecorder(cfg, false)
	require.NoError(t, err)
	fr, ok := rec.(*recorder.FileRecorder)
	require.True(t, ok)
	assert.False(t, fr.CSV)
	assert.True(t, fr.XLSX)
}
