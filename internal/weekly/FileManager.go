package weekly

import (
	"os"

	json "github.com/goccy/go-json"

	"tankwatch/internal/models"
	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/weekly/interfaces"
)

type FileManager struct {
	service    services.SampleServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.SampleServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage, err := f.service.GetSnapshot()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(storage)
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

	// Current versioned envelope
	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err == nil && storage.Regions != nil {
		return f.service.PutSnapshot(&storage)
	}

	// Legacy layout: bare region map without the envelope
	f.logger.Warnf(providers.TypeApp, "Inconsistent DB found, try to migrate from old data format")
	var regions map[string]*models.RegionData
	if err := json.Unmarshal(decompressedData, &regions); err != nil || regions == nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	return f.service.PutSnapshot(&models.Storage{
		Version: models.StorageVersion,
		Regions: regions,
	})
}
