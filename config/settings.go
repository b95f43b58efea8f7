package config

import (
	"fmt"
	"runtime"

	"github.com/kbukum/flo/logger"
)

// Settings is the root configuration for flo.
type Settings struct {
	Logging  logger.Config  `yaml:"logging" mapstructure:"logging"`
	Parallel ParallelConfig `yaml:"parallel" mapstructure:"parallel"`
	Hashing  HashingConfig  `yaml:"hashing" mapstructure:"hashing"`
}

// ParallelConfig holds defaults for the parallel execution helpers.
type ParallelConfig struct {
	// Workers is the default worker count. Zero means one worker per CPU.
	Workers int `yaml:"workers" mapstructure:"workers"`
	// Buffer is the default result channel capacity.
	Buffer int `yaml:"buffer" mapstructure:"buffer"`
}

// HashingConfig holds defaults for file and stream hashing.
type HashingConfig struct {
	// Algorithm is the default digest algorithm.
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`
	// ChunkSize is the read buffer size in bytes.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
}

// ApplyDefaults applies default values to all sections.
func (s *Settings) ApplyDefaults() {
	s.Logging.ApplyDefaults()
	if s.Parallel.Workers <= 0 {
		s.Parallel.Workers = runtime.NumCPU()
	}
	if s.Parallel.Buffer <= 0 {
		s.Parallel.Buffer = s.Parallel.Workers
	}
	if s.Hashing.Algorithm == "" {
		s.Hashing.Algorithm = "sha256"
	}
	if s.Hashing.ChunkSize <= 0 {
		s.Hashing.ChunkSize = 1 << 20
	}
}

// Validate validates all sections.
func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if s.Parallel.Workers < 0 {
		return fmt.Errorf("parallel.workers must not be negative (got: %d)", s.Parallel.Workers)
	}
	switch s.Hashing.Algorithm {
	case "md5", "sha256", "blake2b":
	default:
		return fmt.Errorf("hashing.algorithm must be one of [md5, sha256, blake2b] (got: %s)", s.Hashing.Algorithm)
	}
	return nil
}
