package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// MaxBackups is the number of rotated backups kept by Save
const MaxBackups = 3

// createBackup creates rotating backups (.back1, .back2, .back3) before
// overwriting a config file
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	// .back3 is dropped, .back2 -> .back3, .back1 -> .back2, current -> .back1
	oldest := backupPath(path, MaxBackups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", logger.FieldPath, oldest, logger.FieldError, err)
	}

	for n := MaxBackups - 1; n >= 1; n-- {
		from := backupPath(path, n)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, backupPath(path, n+1)); err != nil {
			return errors.Wrapf(err, "failed to rotate %s", filepath.Base(from))
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupPath(path, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.back%d", path, n)
}

// Save writes cfg as TOML to path, backing up any existing file first
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	logger.Infow("Wrote config file", logger.FieldPath, path)
	return nil
}

// Init writes a config file holding the defaults. Output is left out so it
// keeps following the target.
func Init(path string) error {
	v := viper.New()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		return err
	}
	return Save(cfg, path)
}
