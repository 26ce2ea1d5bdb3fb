// File: lixenwraith/kvconf/doc.go

// Package kvconf provides a small, fail-fast option store for Go programs,
// loaded from line-oriented key=value text.
//
// Features:
//   - Two-phase workflow: declare options with defaults, then load overrides
//   - Unknown or duplicate options are errors, never silently accepted
//   - Provenance tracking ("file:line") for every option
//   - Strict integer parsing with overflow detection
//   - Sources: files, standard input ("-"), readers, string lists, CLI arguments
//   - Struct defaults (DeclareStruct) and struct decoding (Scan)
//   - Atomic save and TOML/YAML/JSON export
//
// Text format, one option per line:
//
//	# comment
//	key = value   # trailing comment
//	empty_value =
//
// Everything after the first '#' is a comment. Whitespace around keys and
// values is ignored. A non-blank line without '=' or with an empty key is an error.
//
// Quick Start:
//
//	defaults := []string{
//	    "max_length = 1024",
//	    "tag_name =",
//	}
//
//	store, err := kvconf.Quick(defaults, "app.conf", os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	maxLength, err := store.Int64("max_length")
//	tagName, err := store.String("tag_name")
//
// Errors:
// Every error matches one of the Err* sentinels through errors.Is; CodeOf
// returns its numeric code. Load errors carry the "<source>:<line>" location
// of the offending input. Loading stops at the first error and earlier lines
// stay applied.
//
// Thread Safety:
// The store guards its map with a read-write mutex, but it is designed for a
// single owner: load everything, then read. Callers that mutate while
// others read should serialize the whole workflow themselves.
package kvconf
