package mint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mintd/internal/models"
	"mintd/internal/testutil"
)

func newTestFileManager(arena *models.Arena, compressor *testutil.MockCompressor) *FileManager {
	return NewFileManager(compressor, arena, &testutil.MockLogger{})
}

func seededArena(t *testing.T) *models.Arena {
	t.Helper()
	arena := models.NewArena()
	require.NoError(t, arena.Update(func(tx *models.Txn) error {
		return models.PutSaleConfig(tx, &models.SaleConfig{
			Admin:        "admin",
			MaxSupply:    100,
			CurNum:       3,
			PriorityList: []string{"w1"},
			CurStage:     models.StagePublic,
		})
	}))
	return arena
}

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dat")
	fm := newTestFileManager(seededArena(t), &testutil.MockCompressor{})

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := newTestFileManager(models.NewArena(), &testutil.MockCompressor{})
	err := fm.LoadFromFile("/nonexistent/path/file.dat")
	assert.NoError(t, err) // not an error, just no data
}

func TestFileManager_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.dat")
	comp := &testutil.MockCompressor{}

	arena := seededArena(t)
	require.NoError(t, newTestFileManager(arena, comp).SaveToFile(path))

	restored := models.NewArena()
	require.NoError(t, newTestFileManager(restored, comp).LoadFromFile(path))

	assert.Equal(t, arena.Len(), restored.Len())
	_ = restored.View(func(tx *models.Txn) error {
		cfg, ok, err := models.GetSaleConfig(tx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint64(3), cfg.CurNum)
		assert.Equal(t, []string{"w1"}, cfg.PriorityList)
		return nil
	})
}

func TestFileManager_RoundtripRealCompressor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zstd.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	arena := seededArena(t)
	fm := NewFileManager(comp, arena, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	restored := models.NewArena()
	fm2 := NewFileManager(comp, restored, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))
	assert.Equal(t, arena.Len(), restored.Len())
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	fm := newTestFileManager(models.NewArena(), &testutil.MockCompressor{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_LoadFromFile_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.dat")
	data, err := json.Marshal(&models.SnapshotV1{Version: 99, Records: map[string][]byte{}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	fm := newTestFileManager(models.NewArena(), &testutil.MockCompressor{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "err.dat")
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress failed")
		},
	}

	fm := newTestFileManager(seededArena(t), comp)
	err := fm.SaveToFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compress failed")

	// No partial file left behind.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_DecompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dec.dat")
	require.NoError(t, os.WriteFile(path, []byte("some data"), 0644))

	comp := &testutil.MockCompressor{
		DecompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("decompress failed")
		},
	}
	fm := newTestFileManager(models.NewArena(), comp)

	err := fm.LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decompress failed")
}
