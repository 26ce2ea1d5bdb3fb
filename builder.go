// File: lixenwraith/kvconf/builder.go
package kvconf

import (
	"fmt"
	"log/slog"
)

// ValidatorFunc defines the signature for a function that can validate a Store.
// It receives the fully loaded store and should return an error if validation fails.
type ValidatorFunc func(s *Store) error

// Builder provides a fluent interface for the declare-then-override workflow:
// defaults are added first, then the file and the arguments update them.
type Builder struct {
	defaults     []string
	defaultsFile string
	file         string
	args         []string
	logger       *slog.Logger
	validators   []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults appends key=value lines that declare the legal options and
// their default values
func (b *Builder) WithDefaults(lines ...string) *Builder {
	b.defaults = append(b.defaults, lines...)
	return b
}

// WithDefaultsFile names a file whose lines are declared after the inline
// defaults, also in add mode
func (b *Builder) WithDefaultsFile(path string) *Builder {
	b.defaultsFile = path
	return b
}

// WithFile sets the configuration file path ("-" for standard input)
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets the command-line arguments applied after the file
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithLogger sets the logger handed to the built store
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates a Store from the configured sources.
// Load errors are returned unchanged so their kind and location survive.
func (b *Builder) Build() (*Store, error) {
	store := New()
	store.SetLogger(b.logger)

	if err := store.LoadList(ModeAdd, b.defaults); err != nil {
		return nil, err
	}

	if b.defaultsFile != "" {
		if err := store.LoadFile(ModeAdd, b.defaultsFile); err != nil {
			return nil, err
		}
	}

	if b.file != "" {
		if err := store.LoadFile(ModeUpdate, b.file); err != nil {
			return nil, err
		}
	}

	if len(b.args) > 0 {
		if err := store.LoadArgs(ModeUpdate, b.args); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(store); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	store.log().Info("configuration loaded", "options", store.Len(), "file", b.file)
	return store, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Store {
	store, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("kvconf build failed: %v", err))
	}
	return store
}

// BuildAndScan builds the store and decodes it into target
func (b *Builder) BuildAndScan(target any) (*Store, error) {
	store, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := store.Scan("", target); err != nil {
		return nil, fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return store, nil
}
