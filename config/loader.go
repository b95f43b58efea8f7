package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/flo/util"
)

const envPrefix = "FLO"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load loads settings from flo.yml and .env files in standard locations,
// applies FLO_-prefixed environment overrides, then fills defaults and
// validates the result.
func Load(opts ...LoaderOption) (*Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	if lc.ConfigFile == "" {
		lc.ConfigFile = findFirst(lc.FileSystem, "./flo.yml", "./config/flo.yml", "../flo.yml")
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFirst(lc.FileSystem, "./.env.flo", "./.env")
	}

	settings := &Settings{}
	if err := loadInto(settings, lc); err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func loadInto(settings *Settings, lc LoaderConfig) error {
	v := viper.New()

	// YAML file first, as the base layer.
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", lc.ConfigFile, err)
		}
	}

	// .env before env binding so its variables participate in overrides.
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", lc.EnvFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	bindEnvOverrides(v)

	if err := v.Unmarshal(settings, viper.DecodeHook(sizeHook())); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	return nil
}

// sizeHook decodes human-readable sizes ("1MB", "512KB") into integer
// fields, so hashing.chunk_size accepts both 1048576 and "1MB".
func sizeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		switch to.Kind() {
		case reflect.Int, reflect.Int64:
		default:
			return data, nil
		}
		if n := util.ParseSize(data.(string), -1); n >= 0 {
			return n, nil
		}
		return data, nil
	}
}

func findFirst(fs FileSystem, paths ...string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnvOverrides maps FLO_SECTION_KEY variables onto nested viper keys.
// FLO_PARALLEL_WORKERS becomes parallel.workers; keys with more than two
// segments keep the tail joined, so FLO_HASHING_CHUNK_SIZE becomes
// hashing.chunk_size.
func bindEnvOverrides(v *viper.Viper) {
	prefix := envPrefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		parts := strings.SplitN(key, "_", 2)
		if len(parts) == 2 {
			v.Set(parts[0]+"."+parts[1], pair[1])
		} else {
			v.Set(key, pair[1])
		}
	}
}
