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

// Package registry defines the two external collaborators the validator
// consults but never owns (spec.md §6): the procedure registry and the
// function registry. This mirrors dolthub-go-mysql-server's own
// collaborator-interface style (cf. auth.Auth / auth.AuditMethod in its
// auth package) — small interfaces, a trivial in-memory implementation for
// tests and the CLI, and no assumption about how a real engine backs them.
package registry

// Variadic is the sentinel ProcedureDescriptor.Argc value meaning "accepts
// any number of arguments".
const Variadic = -1

// ProcedureDescriptor describes one registered procedure.
type ProcedureDescriptor struct {
	Argc    int // Variadic, or an exact argument count
	Outputs map[string]bool
}

// ContainsOutput reports whether name is among the procedure's declared
// YIELD-able outputs.
func (d ProcedureDescriptor) ContainsOutput(name string) bool {
	return d.Outputs[name]
}

// ProcedureRegistry answers "does procedure P exist, what is its argc, does
// it yield output O?" (spec.md §1).
type ProcedureRegistry interface {
	Get(name string) (ProcedureDescriptor, bool)
	// Names lists every registered procedure name, for "did you mean"
	// suggestions on an unknown-procedure error.
	Names() []string
}

// FunctionRegistry answers "is F a function; is F an aggregate?" (spec.md
// §1).
type FunctionRegistry interface {
	Exists(name string) bool
	IsAggregate(name string) bool
	// Names lists every registered function name, for "did you mean"
	// suggestions on an unknown-function error.
	Names() []string
}

// MapProcedureRegistry is a minimal in-memory ProcedureRegistry, suitable
// for tests and the CLI's fixture-driven mode.
type MapProcedureRegistry map[string]ProcedureDescriptor

func (m MapProcedureRegistry) Get(name string) (ProcedureDescriptor, bool) {
	d, ok := m[name]
	return d, ok
}

func (m MapProcedureRegistry) Names() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// MapFunctionRegistry is a minimal in-memory FunctionRegistry.
type MapFunctionRegistry struct {
	Functions  map[string]bool
	Aggregates map[string]bool
}

func NewMapFunctionRegistry(functions []string, aggregates []string) *MapFunctionRegistry {
	r := &MapFunctionRegistry{Functions: make(map[string]bool), Aggregates: make(map[string]bool)}
	for _, f := range functions {
		r.Functions[f] = true
	}
	for _, a := range aggregates {
		r.Functions[a] = true
		r.Aggregates[a] = true
	}
	return r
}

func (r *MapFunctionRegistry) Exists(name string) bool {
	return r.Functions[name]
}

func (r *MapFunctionRegistry) IsAggregate(name string) bool {
	return r.Aggregates[name]
}

func (r *MapFunctionRegistry) Names() []string {
	out := make([]string, 0, len(r.Functions))
	for k := range r.Functions {
		out = append(out, k)
	}
	return out
}
