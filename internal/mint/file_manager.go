package mint

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"mintd/internal/mint/interfaces"
	"mintd/internal/models"
	"mintd/internal/providers"
)

// FileManager persists the record arena as a compressed snapshot:
// JSON envelope, zstd, then tmp file + fsync + rename so a crash mid-save
// never corrupts the previous snapshot.
type FileManager struct {
	arena      *models.Arena
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, arena *models.Arena, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		arena:      arena,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := models.NewSnapshot(f.arena.Snapshot())

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.SnapshotV1
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return err
	}
	if snapshot.Version != models.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	if snapshot.Records == nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s has no records", fileName)
		return nil
	}

	f.arena.Restore(snapshot.ToRecords())
	f.logger.Infof(providers.TypeApp, "Restored %d records from %s", f.arena.Len(), fileName)
	return nil
}
