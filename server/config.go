package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root of the JSON config file.
type Config struct {
	DB              string        `json:"db"`              // Path to the sqlite database file
	Storage         StorageConfig `json:"storage"`         // Where enrollment attachments are stored
	SessionTTLHours int           `json:"sessionTTLHours"` // Lifetime of login sessions. Zero means 7 days.
}

type StorageConfig struct {
	Filesystem *StorageConfigFilesystem `json:"filesystem,omitempty"`
	GCS        *StorageConfigGCS        `json:"gcs,omitempty"`
}

type StorageConfigFilesystem struct {
	Root string `json:"root"` // Root directory of attachment files
}

type StorageConfigGCS struct {
	Bucket string `json:"bucket"` // Name of the Google Cloud Storage bucket
}

// LoadConfig reads the JSON config file at filename.
func LoadConfig(filename string) (Config, error) {
	cfg := Config{}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("Failed to read config file %v: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("Failed to parse config file %v: %w", filename, err)
	}
	if cfg.DB == "" {
		return cfg, fmt.Errorf("Config file %v does not specify 'db'", filename)
	}
	if cfg.Storage.Filesystem == nil && cfg.Storage.GCS == nil {
		// A parish install without explicit storage keeps attachments next to the database.
		cfg.Storage.Filesystem = &StorageConfigFilesystem{
			Root: filepath.Join(filepath.Dir(cfg.DB), "arquivos"),
		}
	}
	return cfg, nil
}
