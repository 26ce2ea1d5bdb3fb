// FILE: lixenwraith/kvconf/store.go
package kvconf

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Mode selects the write discipline applied to a key.
type Mode int

const (
	// ModeAdd declares a new option; the key must not exist yet.
	ModeAdd Mode = iota + 1
	// ModeUpdate overrides a declared option; the key must already exist.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// option holds a value together with the location it was last written from.
type option struct {
	value    string
	location string
}

// Store holds named string options and their provenance.
type Store struct {
	items  map[string]*option
	logger *slog.Logger
	mutex  sync.RWMutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		items:  make(map[string]*option),
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes the store's diagnostics to l. A nil logger discards them.
func (s *Store) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.mutex.Lock()
	s.logger = l
	s.mutex.Unlock()
}

// Destroy releases every option held by the store. Any later call that
// reports errors fails with ErrInvalidParam; Len, Keys and Snapshot see an
// empty store. A missing record encountered during
// teardown is reported as ErrInternal after the store has been emptied.
func (s *Store) Destroy() error {
	if s == nil {
		return newError(ErrInvalidParam, "", "", nil)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.items == nil {
		return newError(ErrInvalidParam, "", "", nil)
	}

	var broken []string
	for key, opt := range s.items {
		if opt == nil {
			broken = append(broken, key)
		}
		delete(s.items, key)
	}
	s.items = nil

	if len(broken) > 0 {
		sort.Strings(broken)
		return newError(ErrInternal, strings.Join(broken, ","), "", nil)
	}
	return nil
}

// Write stores value under key using the given mode.
// ModeAdd fails with ErrKeyExists when key is present; ModeUpdate fails with
// ErrKeyNotFound when it is absent. On success both the value and the
// location of key are replaced.
func (s *Store) Write(mode Mode, key, value, location string) error {
	if s == nil || key == "" {
		return newError(ErrInvalidParam, key, "", nil)
	}
	if mode != ModeAdd && mode != ModeUpdate {
		return newError(ErrInvalidParam, key, "", nil)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.items == nil {
		return newError(ErrInvalidParam, key, "", nil)
	}

	opt, exists := s.items[key]
	switch mode {
	case ModeAdd:
		if exists {
			return newError(ErrKeyExists, key, "", nil)
		}
		s.items[strings.Clone(key)] = &option{
			value:    strings.Clone(value),
			location: strings.Clone(location),
		}
	case ModeUpdate:
		if !exists {
			return newError(ErrKeyNotFound, key, "", nil)
		}
		if opt == nil {
			return newError(ErrInternal, key, "", nil)
		}
		opt.value = strings.Clone(value)
		opt.location = strings.Clone(location)
	}

	s.logger.Debug("option written", "mode", mode.String(), "key", key, "location", location)
	return nil
}

// lookup returns a copy of the record for key.
func (s *Store) lookup(key string) (option, error) {
	if s == nil || key == "" {
		return option{}, newError(ErrInvalidParam, key, "", nil)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.items == nil {
		return option{}, newError(ErrInvalidParam, key, "", nil)
	}
	opt, exists := s.items[key]
	if !exists {
		return option{}, newError(ErrKeyNotFound, key, "", nil)
	}
	if opt == nil {
		return option{}, newError(ErrInternal, key, "", nil)
	}
	return *opt, nil
}

// Location returns the provenance recorded for key.
func (s *Store) Location(key string) (string, error) {
	opt, err := s.lookup(key)
	if err != nil {
		return "", err
	}
	return opt.location, nil
}

// Has reports whether key is declared.
func (s *Store) Has(key string) bool {
	_, err := s.lookup(key)
	return err == nil
}

// Len returns the number of declared options.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// Keys returns all declared option names in sorted order.
func (s *Store) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all option values keyed by name.
// A destroyed store yields an empty map.
func (s *Store) Snapshot() map[string]string {
	snap, err := s.snapshot()
	if err != nil {
		return map[string]string{}
	}
	return snap
}

// snapshot copies all option values, failing on a nil or destroyed store.
func (s *Store) snapshot() (map[string]string, error) {
	if s == nil {
		return nil, newError(ErrInvalidParam, "", "", nil)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.items == nil {
		return nil, newError(ErrInvalidParam, "", "", nil)
	}
	snap := make(map[string]string, len(s.items))
	for key, opt := range s.items {
		if opt != nil {
			snap[key] = opt.value
		}
	}
	return snap, nil
}

// alive fails with ErrInvalidParam on a nil or destroyed store.
func (s *Store) alive() error {
	if s == nil {
		return newError(ErrInvalidParam, "", "", nil)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.items == nil {
		return newError(ErrInvalidParam, "", "", nil)
	}
	return nil
}

// log returns the current logger under the read lock.
func (s *Store) log() *slog.Logger {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.logger
}
