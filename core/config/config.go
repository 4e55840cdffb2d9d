// Package config loads and validates the shell configuration directory.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the file name of the main configuration.
	ConfigurationName = "config.yaml"
	// HistoryDBName is the bolt database holding persistent history.
	HistoryDBName = "history.db"
	// AppLogName is the newline-delimited JSON event log.
	AppLogName = "app.log"
)

// Configuration is the on-disk shell configuration.
type Configuration struct {
	configurationDir string

	// Prompt is the PS1-style prompt template; \u, \h, \w and \$ are
	// substituted.
	Prompt string `json:"prompt"`

	// Motd is printed once at the start of an interactive session.
	Motd string `json:"motd"`

	// HistoryLimit caps the in-memory history; zero means unlimited.
	HistoryLimit int `json:"history_limit" validate:"gte=0"`

	// PersistHistory enables the bolt-backed history store.
	PersistHistory bool `json:"persist_history"`

	// InitCommands are trusted command lines run before the first prompt.
	// They are split with plain word splitting, not the full tokenizer.
	InitCommands []string `json:"init_commands"`

	// Env seeds the environment sink with "key=value" entries.
	Env []string `json:"env"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
