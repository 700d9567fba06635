package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algae-monitor/algae-ml-service/pkg/artifacts"
)

func TestRun(t *testing.T) {
	lc := logger.NewMockClient()
	dst := filepath.Join(t.TempDir(), "models")

	require.Equal(t, 0, run(lc, "../../pkg/artifacts/testdata/models", dst))
	for _, name := range artifacts.DefaultManifest().Files() {
		_, err := os.Stat(filepath.Join(dst, name))
		assert.NoError(t, err, name)
	}

	_, err := artifacts.Load(dst, lc)
	assert.NoError(t, err)
}

func TestRun_Failures(t *testing.T) {
	lc := logger.NewMockClient()
	dst := filepath.Join(t.TempDir(), "models")

	assert.Equal(t, 1, run(lc, filepath.Join(t.TempDir(), "missing"), dst))
	assert.Equal(t, 1, run(lc, t.TempDir(), dst))
}
