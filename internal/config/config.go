package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type options struct {
	dotEnv    []string
	envPrefix string
}

type Option func(*options)

// WithDotEnv replaces the default ".env" with the given files. Missing files are skipped.
func WithDotEnv(files ...string) Option {
	return func(o *options) {
		o.dotEnv = files
	}
}

// WithEnvPrefix makes environment overrides start with prefix, e.g. SOLARIUM_HTTP_PORT.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// Load reads file into config, which must be a pointer to a struct.
//
// Values already set in config are the defaults. Environment variables win over the file,
// the key storage.postgres.addr is read from STORAGE_POSTGRES_ADDR. Durations are parsed
// from strings like "24h" and lists from comma separated strings.
func Load(file string, config any, opts ...Option) error {
	o := options{dotEnv: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	for _, f := range o.dotEnv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	defaults := make(map[string]any)
	if err := mapstructure.Decode(config, &defaults); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}

	v := viper.New()
	if err := v.MergeConfigMap(defaults); err != nil {
		return fmt.Errorf("merge defaults: %w", err)
	}

	v.SetConfigFile(file)
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(config, hook); err != nil {
		return fmt.Errorf("unmarshal %s: %w", file, err)
	}

	return nil
}
