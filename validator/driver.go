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

import "github.com/cypherql/cyphervalidate/ast"

// HandlerFunc is invoked once per traversal phase for a node of its
// registered Kind. start is true on the pre-order call and false on the
// post-order call (spec.md §4.2). The pre/post double-dispatch is
// load-bearing: post-order calls reset Intermediate after a pattern exits
// and remove YIELD-shadowed names after a CALL exits (spec.md §9).
type HandlerFunc func(ctx *Context, n ast.Node, start bool) Decision

// driver performs the depth-first visitor walk described in spec.md §4.2,
// dispatching through a fixed, read-only-after-init handler table (C2+C3).
type driver struct {
	table map[ast.Kind]HandlerFunc
}

// recurseHandler is the default for any AST kind with no bespoke rule:
// always recurse into children, no pre/post side effect.
func recurseHandler(ctx *Context, n ast.Node, start bool) Decision {
	return Recurse
}

// unsupportedHandler backs every kind in ast.UnsupportedKinds (spec.md §6):
// record the diagnostic and abort immediately.
func unsupportedHandler(ctx *Context, n ast.Node, start bool) Decision {
	return ctx.Fail(ErrUnsupportedASTNode.New(n.Kind().String()))
}

// newDriver builds the handler table once. The table is immutable after
// construction (spec.md §4.2/§9); building it is not required to be
// thread-safe, but it must run before any call to Visit.
func newDriver() *driver {
	d := &driver{table: make(map[ast.Kind]HandlerFunc)}

	for k := range ast.UnsupportedKinds {
		d.table[k] = unsupportedHandler
	}

	// clause handlers (C4)
	d.table[ast.KindMatch] = handleMatch
	d.table[ast.KindCreate] = handleCreate
	d.table[ast.KindMerge] = handleMerge
	d.table[ast.KindWith] = handleWith
	d.table[ast.KindReturn] = handleReturn
	d.table[ast.KindUnwind] = handleUnwind
	d.table[ast.KindCall] = handleCall
	d.table[ast.KindDelete] = handleDelete
	d.table[ast.KindSet] = handleSet
	d.table[ast.KindSetProperty] = handleSetProperty
	d.table[ast.KindForeach] = handleForeach
	d.table[ast.KindUnion] = handleUnion
	d.table[ast.KindOnCreate] = handleOnCreate
	d.table[ast.KindOnMatch] = handleOnMatch
	d.table[ast.KindCreateIndex] = handleCreateIndex
	d.table[ast.KindDropIndex] = handleCreateIndex

	// pattern-structure handlers (C5) — registered through the same generic
	// table as clause/expression kinds, matching the table-driven dispatch
	// this validator was distilled from (every AST kind goes through one
	// dispatch point, none are purely manual-call-only).
	d.table[ast.KindPattern] = handlePattern
	d.table[ast.KindPatternPath] = handlePatternPath
	d.table[ast.KindNodePattern] = handleNodePattern
	d.table[ast.KindRelPattern] = handleRelPattern
	d.table[ast.KindNamedPath] = handleNamedPath
	d.table[ast.KindShortestPath] = handleShortestPath

	// expression handlers (C6)
	d.table[ast.KindIdentifier] = handleIdentifier
	d.table[ast.KindMap] = handleMap
	d.table[ast.KindProjection] = handleProjection
	d.table[ast.KindApplyOperator] = handleApplyOperator
	d.table[ast.KindApplyAllOperator] = handleApplyAllOperator
	d.table[ast.KindReduce] = handleReduce
	d.table[ast.KindListComprehension] = handleListComprehension
	d.table[ast.KindAny] = handleListComprehension
	d.table[ast.KindAll] = handleListComprehension
	d.table[ast.KindNone] = handleListComprehension
	d.table[ast.KindSingle] = handleListComprehension
	d.table[ast.KindPatternComprehension] = handlePatternComprehension
	d.table[ast.KindBinaryOperator] = handleBinaryOperator

	return d
}

// Visit dispatches n through the handler table and recurses into children
// per the handler's Decision (spec.md §4.2).
func (d *driver) Visit(ctx *Context, n ast.Node) Decision {
	h, ok := d.table[n.Kind()]
	if !ok {
		h = recurseHandler
	}

	dec := h(ctx, n, true)
	switch dec {
	case Break:
		return Break
	case Continue:
		return Continue
	case Recurse:
		for _, c := range n.Children() {
			if d.Visit(ctx, c) == Break {
				return Break
			}
		}
		return h(ctx, n, false)
	default:
		return dec
	}
}

var defaultDriver = newDriver()
