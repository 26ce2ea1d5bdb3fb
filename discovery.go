// FILE: lixenwraith/kvconf/discovery.go
package kvconf

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions tells DiscoverFile where a program's configuration
// file may live.
type FileDiscoveryOptions struct {
	Name       string   // file base name, extension excluded
	Extensions []string // tried in order for every directory; "" means no extension
	Paths      []string // directories searched before the working and XDG directories
	EnvVar     string   // variable holding an explicit path, e.g. "APP_CONFIG"
	CLIFlag    string   // argument naming an explicit path, e.g. "--config"

	UseXDG        bool // search $XDG_CONFIG_HOME/<Name> and $XDG_CONFIG_DIRS
	UseCurrentDir bool // search the working directory
}

// DefaultDiscoveryOptions looks for <app>.conf, <app>.cfg or <app> in the
// working and XDG directories, honouring <APP>_CONFIG and --config.
func DefaultDiscoveryOptions(app string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          app,
		Extensions:    []string{".conf", ".cfg", ""},
		EnvVar:        strings.ToUpper(app) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverFile locates a configuration file. An explicit CLI flag wins, then
// the environment variable, then the first existing file in the search paths.
// The returned args have the CLI flag and its value removed so they can be
// passed on to LoadArgs. An explicitly named file is returned even if it
// does not exist, so that loading it reports the problem.
func DiscoverFile(opts FileDiscoveryOptions, args []string) (string, []string, bool) {
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				rest := append(append([]string{}, args[:i]...), args[i+2:]...)
				return args[i+1], rest, true
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				rest := append(append([]string{}, args[:i]...), args[i+1:]...)
				return strings.TrimPrefix(arg, opts.CLIFlag+"="), rest, true
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, args, true
		}
	}

	for _, dir := range searchDirs(opts) {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, args, true
			}
		}
	}

	// defaults alone are a valid configuration
	return "", args, false
}

// searchDirs lists candidate directories in lookup order.
func searchDirs(opts FileDiscoveryOptions) []string {
	dirs := append([]string(nil), opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if opts.UseXDG {
		dirs = append(dirs, xdgDirs(opts.Name)...)
	}
	return dirs
}

// WithFileDiscovery sets the builder's file from DiscoverFile, consuming the
// config flag from the arguments given so far
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	path, rest, found := DiscoverFile(opts, b.args)
	b.args = rest
	if found {
		b.file = path
	}
	return b
}

// xdgDirs returns the per-user directory first, then the system ones.
// Unset variables fall back to ~/.config and /etc/xdg, plus /etc.
func xdgDirs(app string) []string {
	var dirs []string

	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		if userHome := os.Getenv("HOME"); userHome != "" {
			home = filepath.Join(userHome, ".config")
		}
	}
	if home != "" {
		dirs = append(dirs, filepath.Join(home, app))
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}
	for _, dir := range system {
		dirs = append(dirs, filepath.Join(dir, app))
	}
	return dirs
}
