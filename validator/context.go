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

package validator

import (
	"github.com/sirupsen/logrus"

	"github.com/cypherql/cyphervalidate/env"
	"github.com/cypherql/cyphervalidate/registry"
)

// Clause identifies the enclosing top-level clause (or clause-like scope)
// a handler is currently nested under (spec.md §3).
type Clause int

const (
	ClauseNone Clause = iota
	ClauseMatch
	ClauseCreate
	ClauseMerge
	ClauseWith
	ClauseReturn
	ClauseUnwind
	ClauseCall
	ClauseSet
	ClauseForeach
	ClauseIndex
	ClauseOnCreate
	ClauseOnMatch
	ClausePatternComprehension
	ClauseReduce
	// ClauseDelete and ClauseUnion are recorded on entry like every other
	// clause but no rule ever branches on them — carried for fidelity with
	// the source this validator was distilled from.
	ClauseDelete
	ClauseUnion
	// ClauseApplyOperator is carried for fidelity with the source this
	// validator was distilled from: it names one of the contexts in which
	// aggregate functions are allowed, but nothing in the traversal ever
	// sets V.clause to it (apply-operator handling never reassigns the
	// enclosing clause). Spec.md §9 inherits this source's quirks as-is.
	ClauseApplyOperator
)

// UnionMode pins whether a query's UNION clauses are plain or ALL, fixed by
// the first UNION encountered (spec.md §3).
type UnionMode int

const (
	UnionUndefined UnionMode = iota
	UnionRegular
	UnionAll
)

// Context is the validator's mutable per-call state (spec.md §3's "V").
// It is created fresh for each top-level Validate/ValidateParams call and
// is never shared across calls (spec.md §5: single-threaded, no
// cross-task sharing).
type Context struct {
	Defined      *env.Environment
	Intermediate *env.Environment
	Clause       Clause
	UnionMode    UnionMode

	Procedures registry.ProcedureRegistry
	Functions  registry.FunctionRegistry

	// Err holds the single diagnostic produced by this call, if any
	// (spec.md invariant 4: at most one diagnostic per validation).
	Err error

	log *logrus.Entry
}

func newContext(procs registry.ProcedureRegistry, funcs registry.FunctionRegistry, log *logrus.Entry) *Context {
	return &Context{
		Defined:      env.New(),
		Intermediate: env.New(),
		Procedures:   procs,
		Functions:    funcs,
		log:          log,
	}
}

// Fail records msg as the single diagnostic and signals the driver to abort
// traversal immediately. Once Err is set it is never overwritten — the
// first fault found wins (spec.md §7 "Propagation").
func (c *Context) Fail(err error) Decision {
	if c.Err == nil {
		c.Err = err
	}
	return Break
}

// Failed reports whether a diagnostic has already been recorded.
func (c *Context) Failed() bool {
	return c.Err != nil
}
