// Package version exposes build metadata for flo binaries.
//
// The variables are populated at build time via ldflags:
//
//	go build -ldflags "-X github.com/kbukum/flo/version.Version=1.2.0 \
//	  -X github.com/kbukum/flo/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/kbukum/flo/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// When ldflags are absent, Get falls back to the module build info that the
// Go toolchain embeds in every binary, so a plain `go install` still reports
// a usable version string.
package version
