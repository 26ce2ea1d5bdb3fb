// FILE: lixenwraith/kvconf/loader.go
package kvconf

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// MaxLineLength bounds a raw input line, terminator included.
	// A line reaching it is rejected with ErrLineTooLong.
	MaxLineLength = 1024

	// StdinSource is the path that designates standard input.
	StdinSource = "-"
	// InlineSource labels options loaded from in-memory string lists.
	InlineSource = "<inline>"
	// ArgsSource labels options loaded from command-line style arguments.
	ArgsSource = "<args>"
)

// formatLocation builds the "<source>:<line>" provenance string.
func formatLocation(source string, lineNum int) string {
	return source + ":" + strconv.Itoa(lineNum)
}

// LoadLine parses a single line and writes the resulting option using mode.
// Blank and comment-only lines succeed without touching the store.
// The option's provenance is recorded as "<source>:<lineNum>".
func (s *Store) LoadLine(mode Mode, raw, source string, lineNum int) error {
	location := formatLocation(source, lineNum)

	entry, ok, err := ParseLine(raw)
	if err != nil {
		return s.fail(withLocation(err, location))
	}
	if !ok {
		return nil
	}

	if err := s.Write(mode, entry.Key, entry.Value, location); err != nil {
		return s.fail(withLocation(err, location))
	}
	return nil
}

// LoadFile loads every line of the file at path using mode.
// The path "-" reads standard input, which is left open.
// Loading stops at the first failing line; lines before it stay applied.
func (s *Store) LoadFile(mode Mode, path string) error {
	if s == nil || path == "" {
		return newError(ErrInvalidParam, "", path, nil)
	}

	if path == StdinSource {
		return s.LoadReader(mode, os.Stdin, StdinSource)
	}

	file, err := os.Open(path)
	if err != nil {
		return s.fail(newError(ErrBadFile, "", path, err))
	}
	defer file.Close()

	return s.LoadReader(mode, file, path)
}

// LoadReader loads line-oriented text from r, labelling provenance with source.
// Lines are numbered from 1.
func (s *Store) LoadReader(mode Mode, r io.Reader, source string) error {
	if s == nil || r == nil {
		return newError(ErrInvalidParam, "", source, nil)
	}

	reader := bufio.NewReaderSize(r, MaxLineLength)
	for lineNum := 1; ; lineNum++ {
		line, readErr := reader.ReadSlice('\n')
		if errors.Is(readErr, bufio.ErrBufferFull) || len(line) >= MaxLineLength {
			return s.fail(newError(ErrLineTooLong, "", formatLocation(source, lineNum), nil))
		}

		if len(line) > 0 {
			// ReadSlice reuses its buffer, so the line is copied before use.
			if err := s.LoadLine(mode, string(line), source, lineNum); err != nil {
				return err
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return s.fail(newError(ErrBadFile, "", formatLocation(source, lineNum), readErr))
		}
	}
}

// LoadList loads each element of lines as one line of text.
// Provenance is "<inline>:<position>" with 1-based positions.
func (s *Store) LoadList(mode Mode, lines []string) error {
	for i, line := range lines {
		if err := s.LoadLine(mode, line, InlineSource, i+1); err != nil {
			return err
		}
	}
	return nil
}

// LoadArgs loads options from command-line style arguments.
// Accepted forms are "--key=value", "--key value" and "--flag" (value "true").
// Arguments not starting with "--" are skipped, as is a bare "--".
// Provenance is "<args>:<position>" where position is the 1-based index of the flag.
func (s *Store) LoadArgs(mode Mode, args []string) error {
	i := 0
	for i < len(args) {
		arg := args[i]
		position := i + 1
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			i++
			continue
		}

		var raw string
		switch {
		case strings.Contains(argContent, separator):
			raw = argContent
			i++
		case i+1 >= len(args) || strings.HasPrefix(args[i+1], "--"):
			raw = argContent + separator + "true"
			i++
		default:
			raw = argContent + separator + args[i+1]
			i += 2
		}

		if err := s.LoadLine(mode, raw, ArgsSource, position); err != nil {
			return err
		}
	}
	return nil
}

// fail logs a load failure at debug level and returns it unchanged.
func (s *Store) fail(err error) error {
	if s == nil || err == nil {
		return err
	}
	s.log().Debug("load failed", "error", err, "code", int(CodeOf(err)))
	return err
}
