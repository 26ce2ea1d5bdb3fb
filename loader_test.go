// FILE: lixenwraith/kvconf/loader_test.go
package kvconf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadLine tests single-line loading and provenance
func TestLoadLine(t *testing.T) {
	s := New()

	require.NoError(t, s.LoadLine(ModeAdd, "", "test1a", 1))
	require.NoError(t, s.LoadLine(ModeUpdate, "   ", "test1a", 2))
	require.NoError(t, s.LoadLine(ModeAdd, "#  ", "test1a", 3))
	require.NoError(t, s.LoadLine(ModeUpdate, " # ", "test1a", 4))
	assert.Equal(t, 0, s.Len())

	err := s.LoadLine(ModeAdd, "aaa", "test1a", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSeparator)
	assert.Equal(t, CodeMissingSeparator, CodeOf(err))

	var kerr *Error
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, "test1a:5", kerr.Location)

	err = s.LoadLine(ModeUpdate, "aaa=", "test1a", 5)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Contains(t, err.Error(), "test1a:5")

	require.NoError(t, s.LoadLine(ModeAdd, "aaa=", "test1a", 6))
	assert.Equal(t, 1, s.Len())
	assertOption(t, s, "aaa", "", "test1a:6")

	require.NoError(t, s.LoadLine(ModeAdd, " aab = # ", "test1a", 7))
	assertOption(t, s, "aab", "", "test1a:7")

	require.NoError(t, s.LoadLine(ModeAdd, "aac=113", "test1a", 8))
	assertOption(t, s, "aac", "113", "test1a:8")

	require.NoError(t, s.LoadLine(ModeAdd, "  aad = 1 1    4  #  xyz", "test1a", 9))
	assertOption(t, s, "aad", "1 1    4", "test1a:9")
	assert.Equal(t, 4, s.Len())

	err = s.LoadLine(ModeAdd, " aab= 1=12#", "test1a", 9)
	assert.ErrorIs(t, err, ErrKeyExists)

	require.NoError(t, s.LoadLine(ModeUpdate, " aab= 1=12#", "test1a", 10))
	assertOption(t, s, "aab", "1=12", "test1a:10")
	assert.Equal(t, 4, s.Len())

	err = s.LoadLine(ModeAdd, "=value", "test1a", 11)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, 4, s.Len())
}

// TestLoadList tests loading from in-memory lists
func TestLoadList(t *testing.T) {
	optList := []string{"abc = 123", "xyz=", "1 2 3 = x y z"}

	t.Run("UpdateBeforeDeclareFails", func(t *testing.T) {
		s := New()
		err := s.LoadList(ModeUpdate, optList)
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Contains(t, err.Error(), "<inline>:1")
	})

	t.Run("AddDeclares", func(t *testing.T) {
		s := New()
		require.NoError(t, s.LoadList(ModeAdd, optList))
		assertOption(t, s, "abc", "123", "<inline>:1")
		assertOption(t, s, "xyz", "", "<inline>:2")
		assertOption(t, s, "1 2 3", "x y z", "<inline>:3")
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		s := New()
		err := s.LoadList(ModeAdd, []string{"a=1", "b=2", "bad", "c=3"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSeparator)
		assert.Contains(t, err.Error(), "<inline>:3")

		assert.True(t, s.Has("a"))
		assert.True(t, s.Has("b"))
		assert.False(t, s.Has("c"))
	})

	t.Run("EmptyList", func(t *testing.T) {
		s := New()
		assert.NoError(t, s.LoadList(ModeAdd, nil))
		assert.Equal(t, 0, s.Len())
	})
}

// TestLoadFile tests file loading
func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("ValidFile", func(t *testing.T) {
		path := writeFile(t, tmpDir, "tst2.cfg", "# test file\nopt1 = xyz\nopt2=\n\n  opt3=3 # three\n")

		s := New()
		require.NoError(t, s.LoadFile(ModeAdd, path))
		assertOption(t, s, "opt1", "xyz", path+":2")
		assertOption(t, s, "opt2", "", path+":3")
		assertOption(t, s, "opt3", "3", path+":5")

		err := s.LoadFile(ModeAdd, path)
		assert.ErrorIs(t, err, ErrKeyExists)
		assert.Equal(t, CodeKeyExists, CodeOf(err))
	})

	t.Run("NoTrailingNewline", func(t *testing.T) {
		path := writeFile(t, tmpDir, "nonl.cfg", "a=1\nb=2")

		s := New()
		require.NoError(t, s.LoadFile(ModeAdd, path))
		assertOption(t, s, "b", "2", path+":2")
	})

	t.Run("PartialLoadNoRollback", func(t *testing.T) {
		lines := []string{"o1=1", "o2=2", "o3=3", "o4=4", "not a pair", "o6=6", "o7=7", "o8=8", "o9=9", "o10=10"}
		path := writeFile(t, tmpDir, "partial.cfg", strings.Join(lines, "\n")+"\n")

		s := New()
		err := s.LoadFile(ModeAdd, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSeparator)

		var kerr *Error
		require.True(t, errors.As(err, &kerr))
		assert.Equal(t, path+":5", kerr.Location)

		assert.Equal(t, 4, s.Len())
		for _, key := range []string{"o1", "o2", "o3", "o4"} {
			assert.True(t, s.Has(key), key)
		}
		assert.False(t, s.Has("o6"))
	})

	t.Run("MissingFile", func(t *testing.T) {
		s := New()
		err := s.LoadFile(ModeAdd, filepath.Join(tmpDir, "does-not-exist.cfg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadFile)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, CodeBadFile, CodeOf(err))
	})

	t.Run("EmptyPath", func(t *testing.T) {
		s := New()
		assert.ErrorIs(t, s.LoadFile(ModeAdd, ""), ErrInvalidParam)
	})

	t.Run("LineTooLong", func(t *testing.T) {
		long := "key=" + strings.Repeat("x", MaxLineLength)
		path := writeFile(t, tmpDir, "long.cfg", "first=1\n"+long+"\nlast=3\n")

		s := New()
		err := s.LoadFile(ModeAdd, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLineTooLong)
		assert.Contains(t, err.Error(), path+":2")
		assert.True(t, s.Has("first"))
		assert.False(t, s.Has("key"))
		assert.False(t, s.Has("last"))
	})

	t.Run("LineLengthBoundary", func(t *testing.T) {
		// "k=" plus padding plus newline
		fits := "k=" + strings.Repeat("v", MaxLineLength-4) + "\n"
		exact := "k=" + strings.Repeat("v", MaxLineLength-3) + "\n"
		require.Len(t, fits, MaxLineLength-1)
		require.Len(t, exact, MaxLineLength)

		s := New()
		require.NoError(t, s.LoadFile(ModeAdd, writeFile(t, tmpDir, "fits.cfg", fits)))

		s = New()
		err := s.LoadFile(ModeAdd, writeFile(t, tmpDir, "exact.cfg", exact))
		assert.ErrorIs(t, err, ErrLineTooLong)
	})
}

// TestLoadStdin tests that "-" reads standard input without closing it
func TestLoadStdin(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stdin.cfg", "opt10=xyz\nopt20=\nopt30=3\nopt10=again\n")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	oldStdin := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = oldStdin }()

	s := New()
	err = s.LoadFile(ModeAdd, StdinSource)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyExists)
	assert.Contains(t, err.Error(), "-:4")

	assertOption(t, s, "opt10", "xyz", "-:1")
	assertOption(t, s, "opt20", "", "-:2")
	assertOption(t, s, "opt30", "3", "-:3")

	// still open: seeking succeeds on an open file
	_, err = f.Seek(0, 0)
	assert.NoError(t, err)
}

// TestLoadReader tests loading from an arbitrary reader
func TestLoadReader(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadReader(ModeAdd, strings.NewReader("a=1\r\nb = two\r\n"), "mem"))
	assertOption(t, s, "a", "1", "mem:1")
	assertOption(t, s, "b", "two", "mem:2")

	assert.ErrorIs(t, s.LoadReader(ModeAdd, nil, "mem"), ErrInvalidParam)
}

// TestLoadArgs tests command-line style argument loading
func TestLoadArgs(t *testing.T) {
	t.Run("AllForms", func(t *testing.T) {
		s := New()
		require.NoError(t, s.LoadList(ModeAdd, []string{"host=localhost", "port=8080", "debug=false", "name="}))

		args := []string{"positional", "--host=example.com", "--port", "9090", "--debug", "--", "--name", "my app"}
		require.NoError(t, s.LoadArgs(ModeUpdate, args))

		assertOption(t, s, "host", "example.com", "<args>:2")
		assertOption(t, s, "port", "9090", "<args>:3")
		assertOption(t, s, "debug", "true", "<args>:5")
		assertOption(t, s, "name", "my app", "<args>:7")
	})

	t.Run("UnknownOption", func(t *testing.T) {
		s := New()
		require.NoError(t, s.LoadList(ModeAdd, []string{"host=localhost"}))

		err := s.LoadArgs(ModeUpdate, []string{"--hots=typo"})
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Contains(t, err.Error(), "<args>:1")
	})

	t.Run("EmptyKey", func(t *testing.T) {
		s := New()
		err := s.LoadArgs(ModeAdd, []string{"--=value"})
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertOption(t *testing.T, s *Store, key, value, location string) {
	t.Helper()
	val, err := s.String(key)
	require.NoError(t, err, key)
	assert.Equal(t, value, val, key)

	loc, err := s.Location(key)
	require.NoError(t, err, key)
	assert.Equal(t, location, loc, key)
}
