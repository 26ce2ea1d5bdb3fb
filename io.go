// File: lixenwraith/kvconf/io.go
package kvconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Dump.
type Format string

const (
	FormatKV   Format = "kv"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Save writes every option to path as key=value lines sorted by name, each
// followed by a comment naming the location it came from. The file is
// replaced atomically and can be loaded back with LoadFile.
// Options that would not parse back to the same key and value, or whose line
// would reach MaxLineLength, are rejected with ErrInvalidParam and nothing is
// written. The location comment is left out where it alone would break the limit.
func (s *Store) Save(path string) error {
	if s == nil || path == "" {
		return newError(ErrInvalidParam, "", path, nil)
	}

	var buf bytes.Buffer
	if err := s.encodeKV(&buf, true); err != nil {
		return err
	}

	if err := atomicWriteFile(path, buf.Bytes()); err != nil {
		return newError(ErrBadFile, "", path, err)
	}
	return nil
}

// Dump writes the current option values to w in the given format.
// Provenance is only kept by FormatKV-encoded files written with Save.
func (s *Store) Dump(w io.Writer, format Format) error {
	if s == nil || w == nil {
		return newError(ErrInvalidParam, "", "", nil)
	}

	if format == FormatKV || format == "" {
		return s.encodeKV(w, false)
	}

	snap, err := s.snapshot()
	if err != nil {
		return err
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(snap); err != nil {
			return newError(ErrInternal, "", "", fmt.Errorf("failed to marshal options to TOML: %w", err))
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snap); err != nil {
			return newError(ErrInternal, "", "", fmt.Errorf("failed to marshal options to YAML: %w", err))
		}
		if err := encoder.Close(); err != nil {
			return newError(ErrInternal, "", "", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snap); err != nil {
			return newError(ErrInternal, "", "", fmt.Errorf("failed to marshal options to JSON: %w", err))
		}
	default:
		return newError(ErrInvalidParam, "", "", fmt.Errorf("unknown format %q", format))
	}
	return nil
}

// encodeKV renders the store as key=value text, validating every line first.
func (s *Store) encodeKV(w io.Writer, withLocations bool) error {
	s.mutex.RLock()
	if s.items == nil {
		s.mutex.RUnlock()
		return newError(ErrInvalidParam, "", "", nil)
	}
	keys := make([]string, 0, len(s.items))
	records := make(map[string]option, len(s.items))
	for key, opt := range s.items {
		if opt == nil {
			s.mutex.RUnlock()
			return newError(ErrInternal, key, "", nil)
		}
		keys = append(keys, key)
		records[key] = *opt
	}
	s.mutex.RUnlock()

	sort.Strings(keys)

	var buf bytes.Buffer
	for _, key := range keys {
		line, err := formatLine(key, records[key].value)
		if err != nil {
			return withLocation(err, records[key].location)
		}
		// the terminator counts toward MaxLineLength
		if len(line)+1 >= MaxLineLength {
			return newError(ErrInvalidParam, key, records[key].location,
				fmt.Errorf("rendered line of %d bytes reaches the %d byte limit", len(line)+1, MaxLineLength))
		}
		if loc := records[key].location; withLocations && loc != "" && !strings.ContainsAny(loc, "\r\n") {
			if comment := " " + commentChar + " " + loc; len(line)+len(comment)+1 < MaxLineLength {
				line += comment
			}
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return newError(ErrBadFile, "", "", err)
	}
	return nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file '%s' to '%s': %w", tempPath, path, err)
	}
	removed = true

	return nil
}
