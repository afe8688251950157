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

// Package introspect defines debug and log-facing metadata contracts for
// registered types. The descriptors returned by typesystem's Register*
// functions satisfy both Namer and Describer; nothing in typesystem depends on this package, so introspection
// stays an optional, load-bearing-free add-on.
package introspect

// Namer identifies a registered type by its registered name (the same
// name returned by apis.Descriptor.Name; not the "::"-joined path).
//
// EntityName MUST be non-empty, deterministic for a given descriptor, safe
// for concurrent calls, and MUST NOT block or allocate on a hot path.
type Namer interface {
	EntityName() string
}

// Describer augments Namer with human-oriented metadata about a registered
// type, for debuggers, admin tooling, and log output.
type Describer interface {
	Namer

	// EntityDescription is a short, human-readable summary of the type.
	// May be empty; callers fall back to EntityName.
	EntityDescription() string

	// EntityCategory reports how the type was registered: "struct" for
	// strategy.NewStructInterface, "dynamic" for
	// strategy.NewDynamicStructInterface, "abstract" for
	// strategy.NewAbstractInterface, or "custom" for a caller-supplied
	// apis.TypeInterface.
	EntityCategory() string

	// EntityVersion reports the type's registration sequence number,
	// formatted as a decimal string. It increases monotonically with each
	// successful RegisterType call made against the owning system and is
	// stable for the lifetime of the descriptor.
	EntityVersion() string
}

// NamerFunc adapts a plain function to Namer.
type NamerFunc func() string

// EntityName implements Namer.
func (f NamerFunc) EntityName() string { return f() }

// Describe renders a one-line, human-readable summary of d, suitable for
// log output: "name (category, vN): description". Description is omitted
// when empty.
func Describe(d Describer) string {
	if d.EntityDescription() == "" {
		return d.EntityName() + " (" + d.EntityCategory() + ", v" + d.EntityVersion() + ")"
	}
	return d.EntityName() + " (" + d.EntityCategory() + ", v" + d.EntityVersion() + "): " + d.EntityDescription()
}
