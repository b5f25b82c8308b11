// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcmserr defines the error-kind taxonomy shared across the GC-MS
// processing pipeline. Kinds are categories, not sentinel values: callers
// test membership with Is, not equality against a particular *Error.
package gcmserr

import (
	"errors"
	"fmt"
)

// Kind categorizes a pipeline failure.
type Kind int

const (
	InvalidArgument Kind = iota
	TypeMismatch
	IndexOutOfRange
	ShapeMismatch
	FileFormat
	NotFound
	EmptyAlignment
	WindowTooSmall
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case TypeMismatch:
		return "type mismatch"
	case IndexOutOfRange:
		return "index out of range"
	case ShapeMismatch:
		return "shape mismatch"
	case FileFormat:
		return "file format"
	case NotFound:
		return "not found"
	case EmptyAlignment:
		return "empty alignment"
	case WindowTooSmall:
		return "window too small"
	default:
		return "unknown"
	}
}

// Error is a pipeline failure tagged with a Kind and the operation that
// raised it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind built from a plain message.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Wrap returns an *Error of the given kind wrapping err, or nil if err is
// nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is, or wraps, a gcmserr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
