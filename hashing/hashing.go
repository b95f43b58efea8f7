package hashing

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/kbukum/flo/config"
	"github.com/kbukum/flo/errors"
)

// Algorithm names a supported digest algorithm.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA256  Algorithm = "sha256"
	Blake2b Algorithm = "blake2b"
)

const defaultChunkSize = 1 << 20

// Digest is a finished hash result.
type Digest struct {
	alg Algorithm
	sum []byte
}

// Algorithm returns the algorithm that produced the digest.
func (d Digest) Algorithm() Algorithm { return d.alg }

// Bytes returns the raw digest bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, len(d.sum))
	copy(out, d.sum)
	return out
}

// Hex returns the digest as a lowercase hex string.
func (d Digest) Hex() string { return hex.EncodeToString(d.sum) }

// Base32 returns the digest in standard base32 encoding.
func (d Digest) Base32() string { return base32.StdEncoding.EncodeToString(d.sum) }

// Options configures hashing.
type Options struct {
	Algorithm Algorithm
	ChunkSize int
}

// Option mutates Options.
type Option func(*Options)

// WithAlgorithm selects the digest algorithm. Default sha256.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *Options) { o.Algorithm = alg }
}

// WithChunkSize sets the read buffer size in bytes. Default 1 MiB.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// FromSettings derives options from a loaded configuration section.
func FromSettings(cfg config.HashingConfig) Option {
	return func(o *Options) {
		if cfg.Algorithm != "" {
			o.Algorithm = Algorithm(cfg.Algorithm)
		}
		if cfg.ChunkSize > 0 {
			o.ChunkSize = cfg.ChunkSize
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Algorithm: SHA256, ChunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	return o
}

func newHasher(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case Blake2b:
		return blake2b.New256(nil)
	default:
		return nil, errors.InvalidOption("algorithm", string(alg)+" is not supported")
	}
}

// Reader hashes everything read from r in fixed-size chunks.
func Reader(r io.Reader, opts ...Option) (Digest, error) {
	o := buildOptions(opts)
	h, err := newHasher(o.Algorithm)
	if err != nil {
		return Digest{}, err
	}
	buf := make([]byte, o.ChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return Digest{}, err
	}
	return Digest{alg: o.Algorithm, sum: h.Sum(nil)}, nil
}

// Bytes hashes a byte slice.
func Bytes(b []byte, opts ...Option) (Digest, error) {
	o := buildOptions(opts)
	h, err := newHasher(o.Algorithm)
	if err != nil {
		return Digest{}, err
	}
	h.Write(b)
	return Digest{alg: o.Algorithm, sum: h.Sum(nil)}, nil
}

// String hashes a string.
func String(s string, opts ...Option) (Digest, error) {
	return Bytes([]byte(s), opts...)
}

// File opens path and hashes its contents.
func File(path string, opts ...Option) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()
	return Reader(f, opts...)
}
