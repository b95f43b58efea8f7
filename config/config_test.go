package config

import (
	"os"
	"testing"
)

// fakeFS pretends no files exist, so Load exercises defaults and env only.
type fakeFS struct {
	files map[string]bool
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }
func (f *fakeFS) LoadEnv(path string) error {
	return nil
}

func TestLoad_DefaultsOnly(t *testing.T) {
	s, err := Load(WithFileSystem(&fakeFS{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Parallel.Workers <= 0 {
		t.Errorf("expected positive default worker count, got %d", s.Parallel.Workers)
	}
	if s.Hashing.Algorithm != "sha256" {
		t.Errorf("expected sha256 default, got %q", s.Hashing.Algorithm)
	}
	if s.Hashing.ChunkSize != 1<<20 {
		t.Errorf("expected 1MiB default chunk size, got %d", s.Hashing.ChunkSize)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("FLO_PARALLEL_WORKERS", "7")
	os.Setenv("FLO_HASHING_ALGORITHM", "blake2b")
	defer os.Unsetenv("FLO_PARALLEL_WORKERS")
	defer os.Unsetenv("FLO_HASHING_ALGORITHM")

	s, err := Load(WithFileSystem(&fakeFS{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Parallel.Workers != 7 {
		t.Errorf("expected 7 workers, got %d", s.Parallel.Workers)
	}
	if s.Hashing.Algorithm != "blake2b" {
		t.Errorf("expected blake2b, got %q", s.Hashing.Algorithm)
	}
}

func TestLoad_HumanReadableChunkSize(t *testing.T) {
	os.Setenv("FLO_HASHING_CHUNK_SIZE", "4MB")
	defer os.Unsetenv("FLO_HASHING_CHUNK_SIZE")

	s, err := Load(WithFileSystem(&fakeFS{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Hashing.ChunkSize != 4<<20 {
		t.Errorf("expected 4MiB chunk size, got %d", s.Hashing.ChunkSize)
	}
}

func TestLoad_InvalidAlgorithm(t *testing.T) {
	os.Setenv("FLO_HASHING_ALGORITHM", "crc32")
	defer os.Unsetenv("FLO_HASHING_ALGORITHM")

	if _, err := Load(WithFileSystem(&fakeFS{})); err == nil {
		t.Fatal("expected validation error for unknown algorithm")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults pass", func(*Settings) {}, false},
		{"negative workers", func(s *Settings) { s.Parallel.Workers = -1 }, true},
		{"bad algorithm", func(s *Settings) { s.Hashing.Algorithm = "xor" }, true},
		{"bad log level", func(s *Settings) { s.Logging.Level = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{}
			s.ApplyDefaults()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithConfigFile_Missing(t *testing.T) {
	s, err := Load(WithFileSystem(&fakeFS{}), WithConfigFile("/nope/flo.yml"))
	if err != nil {
		t.Fatalf("missing config file should not fail: %v", err)
	}
	if s == nil {
		t.Fatal("expected settings")
	}
}
