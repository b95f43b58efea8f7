// Package fpath provides path helpers that feed directory listings and
// file lines into flows.
//
//	lines, err := fpath.Lines("access.log").FilterE(expr.X.Has("ERROR")).Slice(ctx)
package fpath
