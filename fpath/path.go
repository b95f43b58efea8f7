package fpath

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbukum/flo/hashing"
)

// Path is a filesystem path with fluent helpers. The zero value is the
// empty path.
type Path string

// New builds a Path from parts.
func New(parts ...string) Path {
	return Path(filepath.Join(parts...))
}

// String returns the path as a plain string.
func (p Path) String() string { return string(p) }

// Join appends parts to the path.
func (p Path) Join(parts ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, parts...)...))
}

// WithExt replaces the path's extension.
func (p Path) WithExt(ext string) Path {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	base := strings.TrimSuffix(string(p), filepath.Ext(string(p)))
	return Path(base + ext)
}

// Base returns the last path element.
func (p Path) Base() string { return filepath.Base(string(p)) }

// Ext returns the path's extension including the dot.
func (p Path) Ext() string { return filepath.Ext(string(p)) }

// Dir returns the parent directory.
func (p Path) Dir() Path { return Path(filepath.Dir(string(p))) }

// Rel returns the path relative to parent.
func (p Path) Rel(parent Path) (Path, error) {
	rel, err := filepath.Rel(string(parent), string(p))
	return Path(rel), err
}

// Exists reports whether the path exists.
func (p Path) Exists() bool {
	_, err := os.Stat(string(p))
	return err == nil
}

// IsFile reports whether the path is a regular file.
func (p Path) IsFile() bool {
	info, err := os.Stat(string(p))
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether the path is a directory.
func (p Path) IsDir() bool {
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// Size returns the file size in bytes.
func (p Path) Size() (int64, error) {
	info, err := os.Stat(string(p))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModTime returns the last modification time.
func (p Path) ModTime() (time.Time, error) {
	info, err := os.Stat(string(p))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Mode returns the file mode.
func (p Path) Mode() (fs.FileMode, error) {
	info, err := os.Stat(string(p))
	if err != nil {
		return 0, err
	}
	return info.Mode(), nil
}

// Open opens the file for reading.
func (p Path) Open() (*os.File, error) {
	return os.Open(string(p))
}

// CopyTo streams the file's contents into dest, creating or truncating it.
// Returns the number of bytes copied.
func (p Path) CopyTo(dest Path) (int64, error) {
	src, err := p.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(string(dest))
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Hash computes the digest of the file's contents.
func (p Path) Hash(opts ...hashing.Option) (hashing.Digest, error) {
	return hashing.File(string(p), opts...)
}

var sizeUnits = []struct {
	factor int64
	suffix string
}{
	{1e15, "PB"},
	{1e12, "TB"},
	{1e9, "GB"},
	{1e6, "MB"},
	{1e3, "KB"},
	{1, "B"},
}

// SizeString humanizes a byte count with decimal units.
func SizeString(size int64) string {
	for _, u := range sizeUnits {
		if size >= u.factor {
			if u.factor == 1 {
				return fmt.Sprintf("%d %s", size, u.suffix)
			}
			return fmt.Sprintf("%.2f %s", float64(size)/float64(u.factor), u.suffix)
		}
	}
	return fmt.Sprintf("%d B", size)
}
