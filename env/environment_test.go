// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package env

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestInsertFindRemove(t *testing.T) {
	require := require.New(t)

	e := New()
	_, ok := e.Find("a")
	require.False(ok)

	e.Insert("a", Node)
	k, ok := e.Find("a")
	require.True(ok)
	require.Equal(Node, k)

	e.Insert("a", Edge) // last-write-wins
	k, ok = e.Find("a")
	require.True(ok)
	require.Equal(Edge, k)

	e.Remove("a")
	_, ok = e.Find("a")
	require.False(ok)
}

func TestTryInsert(t *testing.T) {
	require := require.New(t)

	e := New()
	require.True(e.TryInsert("a", Node))
	require.False(e.TryInsert("a", Edge))

	k, _ := e.Find("a")
	require.Equal(Node, k)
}

func TestCloneIndependence(t *testing.T) {
	require := require.New(t)

	e := New()
	e.Insert("a", Node)
	e.Insert("b", Edge)

	clone := e.Clone()
	clone.Insert("c", Path)
	clone.Insert("a", Untyped)

	require.True(cmp.Equal(e.Names(), []string{"a", "b"}, cmpopts.SortSlices(func(a, b string) bool { return a < b })))
	require.True(cmp.Equal(clone.Names(), []string{"a", "b", "c"}, cmpopts.SortSlices(func(a, b string) bool { return a < b })))

	k, _ := e.Find("a")
	require.Equal(Node, k)
	k, _ = clone.Find("a")
	require.Equal(Untyped, k)
}

func TestClear(t *testing.T) {
	require := require.New(t)

	e := New()
	e.Insert("a", Node)
	e.Clear()
	require.Equal(0, e.Len())
	require.False(e.Contains("a"))
}

func TestAbsentDistinctFromUntyped(t *testing.T) {
	require := require.New(t)

	e := New()
	e.Insert("a", Untyped)

	k, ok := e.Find("a")
	require.True(ok)
	require.Equal(Untyped, k)

	_, ok = e.Find("never-inserted")
	require.False(ok)
}
