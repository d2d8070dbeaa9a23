package memory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"ihsearch/internal/models"
	"ihsearch/internal/providers"
)

// Snapshot is the on-disk image of every table.
type Snapshot struct {
	Influencers []*models.Influencer `json:"influencers"`
	Metrics     []*models.Metrics    `json:"metrics"`
	Posts       []*models.Post       `json:"posts"`
	SavedAt     time.Time            `json:"saved_at"`
}

type FileManager struct {
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

// SaveToFile writes the compressed snapshot next to fileName and renames it into place.
func (f *FileManager) SaveToFile(fileName string, snapshot *Snapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
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

// LoadFromFile returns nil without error when fileName does not exist.
// A file without a zstd frame header is read as a plain JSON seed.
func (f *FileManager) LoadFromFile(fileName string) (*Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	payload, err := f.compressor.Decompress(data)
	switch {
	case errors.Is(err, errNotCompressed):
		f.logger.Warnf(providers.TypeStore, "Snapshot %s is not compressed, reading it as plain JSON", fileName)
		payload = data
	case err != nil:
		return nil, fmt.Errorf("decompress snapshot %s: %w", fileName, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", fileName, err)
	}
	return &snapshot, nil
}
