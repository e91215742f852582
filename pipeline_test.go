package distill

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	t.Run("create new pipeline", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "records.db")
		pipeline, err := NewPipeline(dbPath)
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Close()

		assert.NotNil(t, pipeline.Store())
		assert.Nil(t, pipeline.Ledger(), "ledger is disabled by default")
		assert.NotNil(t, pipeline.logger)
	})

	t.Run("with ledger", func(t *testing.T) {
		tmpDir := t.TempDir()
		pipeline, err := NewPipeline(
			filepath.Join(tmpDir, "records.db"),
			WithLedgerPath(filepath.Join(tmpDir, "ledger")),
		)
		require.NoError(t, err)
		defer pipeline.Close()

		assert.NotNil(t, pipeline.Ledger())
	})
}

func TestPipeline_Close(t *testing.T) {
	pipeline, err := NewPipeline(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)

	assert.NoError(t, pipeline.Close())
}

func TestPipeline_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	pipeline, err := NewPipeline(
		filepath.Join(tmpDir, "records.db"),
		WithLedgerPath(filepath.Join(tmpDir, "ledger")),
	)
	require.NoError(t, err)
	defer pipeline.Close()

	t.Run("can create extractor", func(t *testing.T) {
		assert.NotNil(t, pipeline.NewExtractor())
	})

	t.Run("can create enhancer", func(t *testing.T) {
		assert.NotNil(t, pipeline.NewEnhancer())
	})
}
