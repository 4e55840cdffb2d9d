package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fs, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	out.configurationDir = path
	return &out, nil
}

// Initialize writes a default configuration into the directory, leaving an
// existing config.yaml untouched.
func Initialize(fs afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)
	if exists, err := afero.Exists(fs, configPath); err != nil {
		return nil, err
	} else if exists {
		logger.Printf("found existing %s, leaving as-is", ConfigurationName)
		return Load(fs, path)
	}

	cfg := defaultConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fs, configPath, out, 0644); err != nil {
		return nil, err
	}
	logger.Printf("wrote %s", configPath)

	cfg.configurationDir = path
	return cfg, nil
}

// HistoryDBPath returns the location of the persistent history database.
func (c *Configuration) HistoryDBPath() string {
	return filepath.Join(c.configurationDir, HistoryDBName)
}

// OpenAppLog opens the event log in an append-only state.
func (c *Configuration) OpenAppLog(fs afero.Fs) (afero.File, error) {
	return fs.OpenFile(filepath.Join(c.configurationDir, AppLogName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}
