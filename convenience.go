// File: lixenwraith/kvconf/convenience.go
package kvconf

import (
	"fmt"
	"sort"
	"strings"
)

// Quick declares defaults, then loads configFile (if non-empty) and args in
// update mode. This is the recommended way to initialize most programs.
func Quick(defaults []string, configFile string, args []string) (*Store, error) {
	return NewBuilder().
		WithDefaults(defaults...).
		WithFile(configFile).
		WithArgs(args).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(defaults []string, configFile string, args []string) *Store {
	store, err := Quick(defaults, configFile, args)
	if err != nil {
		panic(fmt.Sprintf("kvconf initialization failed: %v", err))
	}
	return store
}

// Debug returns a formatted string showing all option values and where they came from
func (s *Store) Debug() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, key := range keys {
		opt := s.items[key]
		if opt == nil {
			fmt.Fprintf(&b, "  %s: <missing record>\n", key)
			continue
		}
		fmt.Fprintf(&b, "  %s = %q (%s)\n", key, opt.value, opt.location)
	}
	return b.String()
}

// Clone creates an independent copy of the store
func (s *Store) Clone() *Store {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	clone := New()
	clone.logger = s.logger
	if s.items == nil {
		clone.items = nil
		return clone
	}
	for key, opt := range s.items {
		if opt == nil {
			continue
		}
		copied := *opt
		clone.items[key] = &copied
	}
	return clone
}
