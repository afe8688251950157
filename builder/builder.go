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

// Package builder assembles a *typesystem.System from its external
// collaborators (an allocator, a lock provider, and a resolved config).
package builder

import (
	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/config"
	"dirpx.dev/dts/lock"
	"dirpx.dev/dts/typesystem"
)

type options struct {
	allocator    apis.Allocator
	lockProvider apis.LockProvider
	cfgOpts      []config.Option
}

// Option configures a System assembled by New.
type Option func(*options)

// WithAllocator installs a as the System's byte allocator, overriding
// DefaultAllocator.
func WithAllocator(a apis.Allocator) Option {
	return func(o *options) { o.allocator = a }
}

// WithLockProvider installs p as the System's lock adapter, overriding
// the no-op default (spec.md §5: "the default adapter is a no-op
// intended for single-threaded use").
func WithLockProvider(p apis.LockProvider) Option {
	return func(o *options) { o.lockProvider = p }
}

// WithConfig applies cfgOpts to the config.Config assembled for the
// System.
func WithConfig(cfgOpts ...config.Option) Option {
	return func(o *options) { o.cfgOpts = append(o.cfgOpts, cfgOpts...) }
}

// New assembles a fresh *typesystem.System from opts. With no options it
// returns a single-threaded System (lock.NewNoOp()) backed by the Go
// heap (DefaultAllocator) with config.DefaultConfig() — mirroring the
// teacher's builder.New()/BuildRegistry/BuildResolver composition, but
// never migrating entries from a prior System: spec.md §1's Non-goals
// exclude hot-replacing a type while instances exist, so there is no
// "previous system" parameter here.
func New(opts ...Option) *typesystem.System {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	allocator := o.allocator
	if allocator == nil {
		allocator = DefaultAllocator()
	}
	lockProvider := o.lockProvider
	if lockProvider == nil {
		lockProvider = lock.NewNoOp()
	}

	cfg := config.NewConfig(o.cfgOpts...)
	return typesystem.New(allocator, lockProvider, cfg)
}
