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

package config

import (
	"dirpx.dev/dts/apis"
)

const (
	// DefaultPathSeparator is the default ResolvePath token separator.
	DefaultPathSeparator = "::"
	// DefaultPointerAlignment is the default composite allocation
	// alignment: standard pointer alignment on 64-bit hosts.
	DefaultPointerAlignment uintptr = 8
	// DefaultDebugHeader represents the default for DebugHeader.
	DefaultDebugHeader = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure PointerAlignment is valid.
	if cfg.PointerAlignment == 0 || cfg.PointerAlignment&(cfg.PointerAlignment-1) != 0 {
		cfg.PointerAlignment = DefaultPointerAlignment
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		PathSeparator:    DefaultPathSeparator,
		PointerAlignment: DefaultPointerAlignment,
		DebugHeader:      DefaultDebugHeader,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPathSeparator sets the PathSeparator option.
// An empty value resets to the default.
func WithPathSeparator(sep string) Option {
	return func(c *apis.Config) {
		if sep == "" {
			c.PathSeparator = DefaultPathSeparator
			return
		}
		c.PathSeparator = sep
	}
}

// WithPointerAlignment sets the PointerAlignment option.
// A non-power-of-two value resets to the default.
func WithPointerAlignment(align uintptr) Option {
	return func(c *apis.Config) {
		if align == 0 || align&(align-1) != 0 {
			c.PointerAlignment = DefaultPointerAlignment
			return
		}
		c.PointerAlignment = align
	}
}

// WithDebugHeader sets the DebugHeader option.
func WithDebugHeader(debug bool) Option {
	return func(c *apis.Config) {
		c.DebugHeader = debug
	}
}
