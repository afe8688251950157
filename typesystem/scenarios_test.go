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

package typesystem_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/pluginset"
	"dirpx.dev/dts/resolver"
	"dirpx.dev/dts/typesystem"
)

// Scenario 1: registering the same root name twice fails with
// NameConflict, and iter() still yields exactly one A.
func TestScenario_DuplicateRootRegistration(t *testing.T) {
	sys := newSystem(nil)
	_, err := typesystem.RegisterStructType[int](sys, "A", nil)
	require.NoError(t, err)

	_, err = typesystem.RegisterStructType[int](sys, "A", nil)
	require.True(t, errors.Is(err, apis.ErrNameConflict))

	count := 0
	it := sys.Iter()
	for {
		d, ok := it.Next()
		if !ok {
			break
		}
		if d.Name() == "A" {
			count++
		}
	}
	it.Close()
	require.Equal(t, 1, count)
}

// Scenario 2: "A", then "B" under "A"; resolve_path walks direct
// children only, returning the deepest match reached.
func TestScenario_ResolvePathParentChild(t *testing.T) {
	sys := newSystem(nil)
	a, err := typesystem.RegisterStructType[int](sys, "A", nil)
	require.NoError(t, err)
	b, err := typesystem.RegisterStructType[int](sys, "B", a)
	require.NoError(t, err)

	chain := resolver.New(sys, "::")

	found, ok := chain.ResolvePath("A::B")
	require.True(t, ok)
	require.Same(t, b, found)

	found, ok = chain.ResolvePath("A::C")
	require.True(t, ok)
	require.Same(t, a, found)

	_, ok = chain.ResolvePath("B")
	require.False(t, ok)
}

// Scenario 3: an abstract type refuses construction but reports
// is_abstract() == true.
func TestScenario_AbstractTypeRefusesConstruction(t *testing.T) {
	sys := newSystem(nil)
	x, err := typesystem.RegisterAbstractType[int](sys, "X", nil)
	require.NoError(t, err)
	require.True(t, x.IsAbstract())

	inst, err := sys.Construct(nil, x, nil)
	require.Nil(t, inst)
	require.True(t, errors.Is(err, apis.ErrAbstractConstruction))
}

// Scenario 4: P carries a 16-byte plugin, C (child of P) an 8-byte
// plugin; constructing C yields a composite of exactly
// header + size(C's language object) + 16 + 8, with P's plugin address
// preceding C's.
func TestScenario_PluginLayoutSizeAndOrdering(t *testing.T) {
	sys := newSystem(nil)
	p, err := typesystem.RegisterStructType[[4]byte](sys, "P", nil)
	require.NoError(t, err)
	c, err := typesystem.RegisterStructType[[4]byte](sys, "C", p)
	require.NoError(t, err)

	_, pIface := pluginset.NewPlainBlock[[16]byte]()
	sys.RegisterPlugin(p, unsafe.Sizeof([16]byte{}), 1, pIface)

	_, cIface := pluginset.NewPlainBlock[[8]byte]()
	sys.RegisterPlugin(c, unsafe.Sizeof([8]byte{}), 2, cIface)

	size := sys.SizeForParams(nil, c, nil)
	want := unsafe.Sizeof(uintptr(0)) + unsafe.Sizeof([4]byte{}) + unsafe.Sizeof([16]byte{}) + unsafe.Sizeof([8]byte{})
	require.Equal(t, want, size)

	inst, err := sys.Construct(nil, c, nil)
	require.NoError(t, err)
	defer sys.Destroy(nil, inst)

	pAddr, ok := sys.ResolveStruct(nil, inst, p, 1)
	require.True(t, ok)
	cAddr, ok := sys.ResolveStruct(nil, inst, c, 2)
	require.True(t, ok)
	require.Less(t, uintptr(pAddr), uintptr(cAddr))
}

// Scenario 5: registering a plugin on a type with a live instance
// panics; the descriptor is immutable while ref_count > 0.
func TestScenario_RegisterPluginOnLiveTypePanics(t *testing.T) {
	sys := newSystem(nil)
	c, err := typesystem.RegisterStructType[int](sys, "C", nil)
	require.NoError(t, err)

	inst, err := sys.Construct(nil, c, nil)
	require.NoError(t, err)
	defer sys.Destroy(nil, inst)

	_, iface := pluginset.NewPlainBlock[int64]()
	require.Panics(t, func() {
		sys.RegisterPlugin(c, unsafe.Sizeof(int64(0)), 1, iface)
	})
}

// Scenario 6: set_parent(A, B) where B transitively inherits from A
// panics as a cycle assertion.
func TestScenario_SetParentCyclePanics(t *testing.T) {
	sys := newSystem(nil)
	a, err := typesystem.RegisterStructType[int](sys, "A", nil)
	require.NoError(t, err)
	b, err := typesystem.RegisterStructType[int](sys, "B", a)
	require.NoError(t, err)

	require.Panics(t, func() {
		_ = sys.SetParent(a, b)
	})
}
