// File: envgrove/config/discovery.go
package config

import (
	"os"
	"path/filepath"
)

// DiscoveryOptions configures automatic source file discovery when no files
// are given explicitly.
type DiscoveryOptions struct {
	// BaseFile is the default source file name (default ".env").
	BaseFile string

	// ModeVar names the environment variable holding the deployment mode.
	// When set, "<BaseFile>.<mode>" is appended after the base file so the
	// mode-specific file overrides it (default "CONFIG_MODE").
	ModeVar string

	// Paths are the directories searched in order (default: working
	// directory only).
	Paths []string
}

// DefaultDiscoveryOptions returns sensible defaults.
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{
		BaseFile: ".env",
		ModeVar:  "CONFIG_MODE",
	}
}

// discoverFiles resolves the ordered source file list for the options. The
// mode is read from the explicit environment snapshot, never ad hoc.
func discoverFiles(opts DiscoveryOptions, environ map[string]string) []string {
	base := opts.BaseFile
	if base == "" {
		base = ".env"
	}
	modeVar := opts.ModeVar
	if modeVar == "" {
		modeVar = "CONFIG_MODE"
	}

	dirs := opts.Paths
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var files []string
	if path, ok := findIn(dirs, base); ok {
		files = append(files, path)
	}
	if mode := environ[modeVar]; mode != "" {
		if path, ok := findIn(dirs, base+"."+mode); ok {
			files = append(files, path)
		}
	}
	return files
}

func findIn(dirs []string, name string) (string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
