// FILE: lixenwraith/kvconf/errors.go
package kvconf

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the package matches exactly one of
// these through errors.Is.
var (
	ErrInternal         = errors.New("internal consistency violation")
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrNoMem            = errors.New("out of memory")
	ErrBadFile          = errors.New("source unreadable")
	ErrLineTooLong      = errors.New("line too long")
	ErrMissingSeparator = errors.New("missing '=' separator")
	ErrMissingKey       = errors.New("missing key")
	ErrKeyExists        = errors.New("key already exists")
	ErrKeyNotFound      = errors.New("key not found")
	ErrBadNumber        = errors.New("bad number")
)

// Code is the stable numeric identifier of an error kind.
type Code int

const (
	CodeOK Code = iota
	CodeInternal
	CodeInvalidParam
	CodeNoMem
	CodeBadFile
	CodeLineTooLong
	CodeMissingSeparator
	CodeMissingKey
	CodeKeyExists
	CodeKeyNotFound
	CodeBadNumber
)

var kindCodes = []struct {
	kind error
	code Code
}{
	{ErrInternal, CodeInternal},
	{ErrInvalidParam, CodeInvalidParam},
	{ErrNoMem, CodeNoMem},
	{ErrBadFile, CodeBadFile},
	{ErrLineTooLong, CodeLineTooLong},
	{ErrMissingSeparator, CodeMissingSeparator},
	{ErrMissingKey, CodeMissingKey},
	{ErrKeyExists, CodeKeyExists},
	{ErrKeyNotFound, CodeKeyNotFound},
	{ErrBadNumber, CodeBadNumber},
}

// Error is the structured failure returned by store operations.
// Kind is one of the Err* sentinels; Location is the provenance of the
// offending input ("<source>:<line>") when one is known.
type Error struct {
	Kind     error
	Key      string
	Location string
	Err      error
}

func newError(kind error, key, location string, cause error) *Error {
	return &Error{Kind: kind, Key: key, Location: location, Err: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Location != "" {
		b.WriteString(e.Location)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Key != "" {
		fmt.Fprintf(&b, " %q", e.Key)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// CodeOf returns the numeric code of err. The outermost *Error decides;
// errors that did not originate in this package map to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return codeOfKind(e.Kind)
	}
	return codeOfKind(err)
}

func codeOfKind(err error) Code {
	for _, kc := range kindCodes {
		if errors.Is(err, kc.kind) {
			return kc.code
		}
	}
	return CodeInternal
}

// withLocation attaches a provenance to err, preserving its kind.
// An existing location is never overwritten.
func withLocation(err error, location string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Location != "" {
			return err
		}
		located := *e
		located.Location = location
		return &located
	}
	return newError(ErrInternal, "", location, err)
}
