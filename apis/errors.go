/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind enumerates the three structured failure kinds DTS surfaces
// (spec.md §7). Allocation failure and "type reports size 0" are not
// among them: those manifest as a nil instance, never as an *Error.
type ErrorKind int

const (
	// AbstractConstruction: attempted to construct or copy-construct a
	// type marked abstract.
	AbstractConstruction ErrorKind = iota
	// NameConflict: registering or re-parenting a type into a position
	// where another descriptor already holds the same name under the
	// same parent.
	NameConflict
	// UndefinedMethod: invoked copy-construct on a language object whose
	// type did not implement one.
	UndefinedMethod
)

// String returns a stable, human-readable token for k.
func (k ErrorKind) String() string {
	switch k {
	case AbstractConstruction:
		return "AbstractConstruction"
	case NameConflict:
		return "NameConflict"
	case UndefinedMethod:
		return "UndefinedMethod"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Parse converts a string token into the corresponding ErrorKind, case
// insensitively. It returns a non-nil error for any other input.
func Parse(s string) (ErrorKind, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "abstractconstruction":
		return AbstractConstruction, nil
	case "nameconflict":
		return NameConflict, nil
	case "undefinedmethod":
		return UndefinedMethod, nil
	default:
		return 0, fmt.Errorf("apis: unknown error kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	switch k {
	case AbstractConstruction, NameConflict, UndefinedMethod:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("apis: cannot marshal unknown error kind %d", k)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Sentinel errors, one per ErrorKind, for errors.Is comparisons.
var (
	ErrAbstractConstruction = errors.New("dts: abstract construction")
	ErrNameConflict         = errors.New("dts: name conflict")
	ErrUndefinedMethod      = errors.New("dts: undefined method")
)

func sentinelFor(k ErrorKind) error {
	switch k {
	case AbstractConstruction:
		return ErrAbstractConstruction
	case NameConflict:
		return ErrNameConflict
	case UndefinedMethod:
		return ErrUndefinedMethod
	default:
		return nil
	}
}

// Error is the structured error DTS returns for the three ErrorKind
// failures. It wraps the matching package-level sentinel so
// errors.Is(err, apis.ErrNameConflict) works regardless of Op/Type.
type Error struct {
	Kind ErrorKind
	Op   string // operation that failed, e.g. "RegisterType"
	Type string // the type name involved, if any

	// Err, when non-nil, is an additional wrapped cause.
	Err error
}

// NewError builds an *Error for kind, recording op and the type name.
func NewError(kind ErrorKind, op, typ string) *Error {
	return &Error{Kind: kind, Op: op, Type: typ}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("dts: ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Type != "" {
		b.WriteString(": ")
		b.WriteString(e.Type)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return sentinelFor(e.Kind)
}

// Is reports whether target is the sentinel error matching e.Kind, so
// that errors.Is(err, apis.ErrNameConflict) works without walking Err.
func (e *Error) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}
