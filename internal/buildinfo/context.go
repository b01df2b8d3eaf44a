// Package buildinfo contains build-time metadata kept apart from user configuration.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// UnknownValue is reported for metadata that was not injected at build time.
const UnknownValue = "unknown"

// Set with -ldflags "-X github.com/tphakala/weatherdash/internal/buildinfo.version=..."
var (
	version   string
	buildDate string
)

// BuildInfo provides read access to build-time metadata.
type BuildInfo interface {
	GetVersion() string
	GetBuildDate() string
	GetCommit() string
}

// Context contains build-time metadata that is not user-configurable.
type Context struct {
	// Version holds the Git version tag from build
	Version string

	// BuildDate is the time when the binary was built
	BuildDate string

	// Commit is the VCS revision, read from the Go build info when available
	Commit string
}

// NewContext creates a Context from explicit values.
func NewContext(version, buildDate, commit string) *Context {
	return &Context{Version: version, BuildDate: buildDate, Commit: commit}
}

// Current returns the metadata of the running binary.
func Current() *Context {
	ctx := NewContext(version, buildDate, "")
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				ctx.Commit = s.Value
			}
		}
		if ctx.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			ctx.Version = info.Main.Version
		}
	}
	return ctx
}

// GetVersion implements BuildInfo.GetVersion
func (c *Context) GetVersion() string {
	if c == nil || c.Version == "" {
		return UnknownValue
	}
	return c.Version
}

// GetBuildDate implements BuildInfo.GetBuildDate
func (c *Context) GetBuildDate() string {
	if c == nil || c.BuildDate == "" {
		return UnknownValue
	}
	return c.BuildDate
}

// GetCommit implements BuildInfo.GetCommit
func (c *Context) GetCommit() string {
	if c == nil || c.Commit == "" {
		return UnknownValue
	}
	if len(c.Commit) > 12 {
		return c.Commit[:12]
	}
	return c.Commit
}

// String formats the metadata for the version command.
func (c *Context) String() string {
	return fmt.Sprintf("weatherdash %s (commit %s, built %s, %s %s/%s)",
		c.GetVersion(), c.GetCommit(), c.GetBuildDate(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
