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

// Package dts offers a package-level convenience System for callers that
// only ever need one. Every DTS is otherwise an independent
// *typesystem.System with its own registry and locks; the only
// package-level state is the lazily built default System itself, which
// is never replaced once built (spec.md §9, Design Notes).
package dts

import (
	"sync"

	"dirpx.dev/dts/builder"
	"dirpx.dev/dts/typesystem"
)

var (
	defaultOnce sync.Once
	defaultSys  *typesystem.System
)

// Default returns the package-level convenience System, built on first
// use with builder.New()'s defaults (no-op lock, heap allocator,
// config.DefaultConfig()). Callers embedding more than one type system,
// or needing a non-default lock provider or allocator, should call
// builder.New directly instead.
func Default() *typesystem.System {
	defaultOnce.Do(func() {
		defaultSys = builder.New()
	})
	return defaultSys
}
