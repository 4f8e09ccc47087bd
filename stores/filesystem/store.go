package filesystem

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const fileExt = ".json"

type fsStore struct {
	basePath string
}

// NewStore creates a filesystem-based store rooted at basePath.
func NewStore(basePath string) (*fsStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &fsStore{basePath: basePath}, nil
}

// recordPath maps a key to a file name that can never leave basePath.
func (s *fsStore) recordPath(key string) string {
	return filepath.Join(s.basePath, base64.RawURLEncoding.EncodeToString([]byte(key))+fileExt)
}

func (s *fsStore) Get(ctx context.Context, key string) (string, bool, error) {
	filePath := s.recordPath(key)
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Record not found")
			return "", false, nil
		}
		log.WithError(err).Error("Failed to read record")
		return "", false, err
	}
	return string(data), true, nil
}

func (s *fsStore) Set(ctx context.Context, key, value string) error {
	filePath := s.recordPath(key)
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	// Write next to the target and rename so readers never see a partial file.
	tmpPath := filepath.Join(s.basePath, "."+ulid.Make().String()+".tmp")
	if err := os.WriteFile(tmpPath, []byte(value), 0644); err != nil {
		log.WithError(err).Error("Failed to write record")
		return err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		log.WithError(err).Error("Failed to move record into place")
		return err
	}

	log.Debug("Record saved")
	return nil
}

func (s *fsStore) Delete(ctx context.Context, key string) error {
	filePath := s.recordPath(key)
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		log.WithError(err).Error("Failed to delete record")
		return err
	}

	log.Debug("Record deleted")
	return nil
}

func (s *fsStore) Close() error {
	return nil
}
