package hashing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/flo/config"
)

func TestString_KnownDigests(t *testing.T) {
	tests := []struct {
		name string
		alg  Algorithm
		in   string
		hex  string
	}{
		{
			"md5 empty",
			MD5,
			"",
			"d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			"md5 abc",
			MD5,
			"abc",
			"900150983cd24fb0d6963f7d28e17f72",
		},
		{
			"sha256 abc",
			SHA256,
			"abc",
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			"blake2b-256 abc",
			Blake2b,
			"abc",
			"bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := String(tt.in, WithAlgorithm(tt.alg))
			if err != nil {
				t.Fatalf("hash failed: %v", err)
			}
			if d.Hex() != tt.hex {
				t.Errorf("got %s, want %s", d.Hex(), tt.hex)
			}
			if d.Algorithm() != tt.alg {
				t.Errorf("algorithm = %s", d.Algorithm())
			}
		})
	}
}

func TestReader_ChunkSizeDoesNotChangeDigest(t *testing.T) {
	data := bytes.Repeat([]byte("flo"), 10000)

	whole, err := Reader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	chunked, err := Reader(bytes.NewReader(data), WithChunkSize(7))
	if err != nil {
		t.Fatal(err)
	}
	if whole.Hex() != chunked.Hex() {
		t.Errorf("chunk size changed digest: %s vs %s", whole.Hex(), chunked.Hex())
	}
}

func TestBase32(t *testing.T) {
	d, err := String("abc", WithAlgorithm(MD5))
	if err != nil {
		t.Fatal(err)
	}
	b32 := d.Base32()
	if b32 == "" || strings.ToUpper(b32) != b32 {
		t.Errorf("expected uppercase base32, got %q", b32)
	}
}

func TestBytes_ReturnsCopy(t *testing.T) {
	d, err := String("abc")
	if err != nil {
		t.Fatal(err)
	}
	raw := d.Bytes()
	raw[0] ^= 0xff
	if d.Bytes()[0] == raw[0] {
		t.Error("Bytes must return a copy")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := File(path, WithAlgorithm(SHA256))
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if d.Hex() != want {
		t.Errorf("got %s", d.Hex())
	}

	if _, err := File(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := String("abc", WithAlgorithm("crc32")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}

func TestFromSettings(t *testing.T) {
	d, err := String("abc", FromSettings(config.HashingConfig{Algorithm: "md5"}))
	if err != nil {
		t.Fatal(err)
	}
	if d.Hex() != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("got %s", d.Hex())
	}

	// A zero-valued section keeps the built-in defaults.
	o := buildOptions([]Option{FromSettings(config.HashingConfig{})})
	if o.Algorithm != SHA256 || o.ChunkSize != defaultChunkSize {
		t.Errorf("got %+v", o)
	}
}
