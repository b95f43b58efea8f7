package fpath

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/flo/flow"
)

// LsOptions configures directory listings.
type LsOptions struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Glob filters entries by base-name pattern. Empty matches all.
	Glob string
	// Hidden includes dot-files. Default excludes them.
	Hidden bool
}

// LsOption mutates LsOptions.
type LsOption func(*LsOptions)

// Recursive descends into subdirectories.
func Recursive() LsOption {
	return func(o *LsOptions) { o.Recursive = true }
}

// Glob filters entries by base-name pattern.
func Glob(pattern string) LsOption {
	return func(o *LsOptions) { o.Glob = pattern }
}

// IncludeHidden includes dot-files in the listing.
func IncludeHidden() LsOption {
	return func(o *LsOptions) { o.Hidden = true }
}

// Ls lists the contents of dir as a flow of Path values, sorted by name.
// The root directory itself is not included.
func Ls(dir Path, opts ...LsOption) *flow.Flow {
	var o LsOptions
	for _, opt := range opts {
		opt(&o)
	}
	return flow.Func(func(context.Context) flow.Iterator {
		paths, err := list(dir, o)
		return &listIter{paths: paths, err: err}
	})
}

// Walk is Ls with Recursive implied.
func Walk(dir Path, opts ...LsOption) *flow.Flow {
	return Ls(dir, append([]LsOption{Recursive()}, opts...)...)
}

func list(dir Path, o LsOptions) ([]Path, error) {
	var out []Path
	keep := func(path string, d fs.DirEntry) (bool, error) {
		name := d.Name()
		if !o.Hidden && strings.HasPrefix(name, ".") {
			return false, nil
		}
		if o.Glob != "" {
			ok, err := filepath.Match(o.Glob, name)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	if o.Recursive {
		err := filepath.WalkDir(string(dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == string(dir) {
				return nil
			}
			ok, err := keep(path, d)
			if err != nil {
				return err
			}
			if !o.Hidden && d.IsDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if ok {
				out = append(out, Path(path))
			}
			return nil
		})
		return out, err
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}
	for _, d := range entries {
		ok, err := keep(filepath.Join(string(dir), d.Name()), d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, Path(filepath.Join(string(dir), d.Name())))
		}
	}
	return out, nil
}

type listIter struct {
	paths []Path
	index int
	err   error
}

func (it *listIter) Next(context.Context) (any, bool, error) {
	if it.err != nil {
		err := it.err
		it.err = nil
		return nil, false, err
	}
	if it.index >= len(it.paths) {
		return nil, false, nil
	}
	p := it.paths[it.index]
	it.index++
	return p, true, nil
}

func (it *listIter) Close() error { return nil }

// Lines streams the file's lines, without trailing newlines. The flow is
// restartable: each terminal call reopens the file.
func Lines(path Path) *flow.Flow {
	return flow.Func(func(context.Context) flow.Iterator {
		f, err := path.Open()
		if err != nil {
			return &lineIter{err: err}
		}
		return &lineIter{file: f, scanner: bufio.NewScanner(f)}
	})
}

type lineIter struct {
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func (it *lineIter) Next(context.Context) (any, bool, error) {
	if it.err != nil {
		err := it.err
		it.err = nil
		return nil, false, err
	}
	if it.scanner.Scan() {
		return it.scanner.Text(), true, nil
	}
	return nil, false, it.scanner.Err()
}

func (it *lineIter) Close() error {
	if it.file != nil {
		return it.file.Close()
	}
	return nil
}
