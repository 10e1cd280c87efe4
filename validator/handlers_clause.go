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
	"fmt"

	"github.com/cypherql/cyphervalidate/ast"
	"github.com/cypherql/cyphervalidate/env"
	"github.com/cypherql/cyphervalidate/internal/similartext"
	"github.com/cypherql/cyphervalidate/registry"
)

// handleMatch validates the pattern under ClauseMatch, then the predicate
// under whatever clause enclosed the MATCH (a predicate may reference
// outer-scope identifiers freely, spec.md §4.3).
func handleMatch(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	m := n.(*ast.Match)

	backup := ctx.Clause
	ctx.Clause = ClauseMatch
	if defaultDriver.Visit(ctx, m.Pattern) == Break {
		return Break
	}

	ctx.Clause = backup
	if m.Predicate != nil {
		if defaultDriver.Visit(ctx, m.Predicate) == Break {
			return Break
		}
	}

	ctx.Clause = ClauseMatch
	return Continue
}

func handleCreate(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseCreate
	return Recurse
}

func handleMerge(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseMerge
	return Recurse
}

func handleOnCreate(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseOnCreate
	return Recurse
}

func handleOnMatch(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseOnMatch
	return Recurse
}

// handleUnwind introduces its loop variable unconditionally, overwriting any
// prior binding of the same name.
func handleUnwind(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	u := n.(*ast.Unwind)
	ctx.Clause = ClauseUnwind
	ctx.Defined.Insert(u.Variable, env.Untyped)
	return Recurse
}

// handleCall introduces every YIELD name (both the procedure output and its
// alias, if any) before checking the procedure exists, its argc matches, and
// every yielded output is one the procedure actually declares. The
// expression name is removed again post-order if it was aliased, so only
// the alias remains visible afterward (spec.md §4.3).
func handleCall(ctx *Context, n ast.Node, start bool) Decision {
	c := n.(*ast.Call)

	if !start {
		for _, p := range c.Projections {
			if p.Alias == "" {
				continue
			}
			id := p.Expression.(*ast.Identifier)
			ctx.Defined.Remove(id.Name)
		}
		return Continue
	}

	ctx.Clause = ClauseCall
	for _, p := range c.Projections {
		if p.Alias != "" {
			ctx.Defined.Insert(p.Alias, env.Untyped)
		}
		id := p.Expression.(*ast.Identifier)
		ctx.Defined.Insert(id.Name, env.Untyped)
	}

	desc, ok := ctx.Procedures.Get(c.ProcName)
	if !ok {
		return ctx.Fail(ErrProcedureNotRegistered.New(c.ProcName, similartext.Find(ctx.Procedures.Names(), c.ProcName)))
	}
	if desc.Argc != registry.Variadic && desc.Argc != len(c.Arguments) {
		return ctx.Fail(ErrProcedureArgCount.New(c.ProcName, desc.Argc, len(c.Arguments)))
	}

	seen := make(map[string]bool, len(c.Projections))
	for _, p := range c.Projections {
		id := p.Expression.(*ast.Identifier)
		if seen[id.Name] {
			return ctx.Fail(ErrVariableAlreadyDeclared.New(id.Name))
		}
		seen[id.Name] = true
		if !desc.ContainsOutput(id.Name) {
			return ctx.Fail(ErrProcedureUnknownOutput.New(c.ProcName, id.Name))
		}
	}

	return Recurse
}

// handleDelete restricts DELETE's target expressions to the kinds that can
// resolve to a node, path, or relationship at runtime.
func handleDelete(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	d := n.(*ast.Delete)
	ctx.Clause = ClauseDelete

	for _, e := range d.Expressions {
		switch e.(type) {
		case *ast.Identifier, *ast.ApplyOperator, *ast.ApplyAllOperator, *ast.SubscriptOperator:
		default:
			return ctx.Fail(ErrDeleteUnsupportedExpr.New())
		}
	}
	return Recurse
}

// handleSetProperty rejects SET targets whose left-hand side is not a plain
// alias property reference, e.g. `SET (CASE WHEN ... END).prop = 1`.
func handleSetProperty(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	sp := n.(*ast.SetProperty)
	if po, ok := sp.Target.(*ast.PropertyOperator); ok {
		if _, isID := po.Target.(*ast.Identifier); !isID {
			return ctx.Fail(ErrSetNonAliasLHS.New())
		}
	}
	return Recurse
}

func handleSet(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseSet
	return Recurse
}

// handleForeach scopes its loop variable and body to a clone of Defined,
// restricting the body to updating clauses. The clause is never restored
// afterward, matching the source this validator was distilled from: it stays
// at ClauseForeach or at whatever the last body clause set it to.
func handleForeach(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	f := n.(*ast.Foreach)

	orig := ctx.Defined
	ctx.Defined = orig.Clone()
	ctx.Clause = ClauseForeach

	if defaultDriver.Visit(ctx, f.List) == Break {
		ctx.Defined = orig
		return Break
	}

	ctx.Defined.Insert(f.Variable, env.Untyped)

	for _, cl := range f.Clauses {
		switch cl.Kind() {
		case ast.KindCreate, ast.KindSet, ast.KindRemove, ast.KindMerge, ast.KindDelete, ast.KindForeach:
		default:
			ctx.Defined = orig
			return ctx.Fail(ErrForeachOnlyUpdating.New())
		}
		if defaultDriver.Visit(ctx, cl) == Break {
			ctx.Defined = orig
			return Break
		}
	}

	ctx.Defined = orig
	return Continue
}

// handleUnion pins UnionMode on the first UNION encountered and rejects a
// later UNION that disagrees on ALL, then resets Defined: nothing from one
// UNION branch carries into the next.
func handleUnion(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	u := n.(*ast.Union)

	wantAll := UnionRegular
	if u.All {
		wantAll = UnionAll
	}
	if ctx.UnionMode == UnionUndefined {
		ctx.UnionMode = wantAll
	} else if ctx.UnionMode != wantAll {
		return ctx.Fail(ErrUnionMixed.New())
	}

	ctx.Clause = ClauseUnion
	ctx.Defined = env.New()
	return Recurse
}

// handleCreateIndex covers both index creation and drop bodies — these skip
// the structural passes entirely (spec.md §4.7) and run only through this
// handler.
func handleCreateIndex(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	ctx.Clause = ClauseIndex
	if ci, ok := n.(*ast.CreateIndex); ok && ci.Identifier != "" {
		ctx.Defined.Insert(ci.Identifier, env.Untyped)
	}
	return Recurse
}

// validateLimitSkip rejects a LIMIT or SKIP value that is neither a literal
// nor a parameter — the value itself (e.g. negative, non-integer) is only
// checked at runtime (spec.md §1 Non-goals).
func validateLimitSkip(ctx *Context, limit, skip ast.Node) Decision {
	if limit != nil {
		switch limit.(type) {
		case *ast.Literal, *ast.Parameter:
		default:
			return ctx.Fail(ErrLimitInvalidType.New())
		}
	}
	if skip != nil {
		switch skip.(type) {
		case *ast.Literal, *ast.Parameter:
		default:
			return ctx.Fail(ErrSkipInvalidType.New())
		}
	}
	return Recurse
}

// handleWith manually sequences its children so ORDER BY and the predicate
// see the projection's new aliases while the projections themselves do not
// (spec.md §4.3): visit projections under the old environment, introduce
// aliases, then visit the predicate and ORDER BY. Unless the clause
// includes `*`, Defined is then rebuilt to hold exactly the projected names.
func handleWith(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	w := n.(*ast.With)
	ctx.Clause = ClauseWith

	if dec := validateLimitSkip(ctx, w.Limit, w.Skip); dec == Break {
		return Break
	}

	for _, p := range w.Projections {
		if defaultDriver.Visit(ctx, p) == Break {
			return Break
		}
	}

	if dec := introduceWithAliases(ctx, w); dec == Break {
		return Break
	}

	if w.Predicate != nil {
		if defaultDriver.Visit(ctx, w.Predicate) == Break {
			return Break
		}
	}
	if w.OrderBy != nil {
		if defaultDriver.Visit(ctx, w.OrderBy) == Break {
			return Break
		}
	}

	if !w.Star {
		projected := env.New()
		for _, p := range w.Projections {
			name, carried, hasCarried := withProjectionBinding(ctx, p)
			if hasCarried {
				projected.Insert(name, carried)
			} else {
				projected.Insert(name, env.Untyped)
			}
		}
		ctx.Defined = projected
	}

	return Continue
}

// introduceWithAliases inserts each projection's column name into
// ctx.Defined (carrying forward the prior binding's kind when the
// projection is a bare identifier reference) and rejects duplicate column
// names and unaliased non-identifier projections.
func introduceWithAliases(ctx *Context, w *ast.With) Decision {
	seen := make(map[string]bool, len(w.Projections))
	for _, p := range w.Projections {
		if p.Alias == "" {
			if _, ok := p.Expression.(*ast.Identifier); !ok {
				return ctx.Fail(ErrWithProjectionAlias.New())
			}
		}

		name, carried, hasCarried := withProjectionBinding(ctx, p)
		if hasCarried {
			ctx.Defined.Insert(name, carried)
		} else {
			ctx.Defined.Insert(name, env.Untyped)
		}

		if seen[name] {
			return ctx.Fail(ErrDuplicateColumns.New())
		}
		seen[name] = true
	}
	return Recurse
}

// withProjectionBinding resolves one WITH projection's output name, and —
// when the projection is a bare identifier reference — the kind it carries
// forward from the current environment (spec.md §9, Open Question 1: this
// is how `WITH x AS a` lets `a` inherit `x`'s node/edge/path kind).
func withProjectionBinding(ctx *Context, p *ast.Projection) (name string, carried env.Kind, hasCarried bool) {
	if p.Alias != "" {
		name = p.Alias
		if id, ok := p.Expression.(*ast.Identifier); ok {
			carried, hasCarried = ctx.Defined.Find(id.Name)
		}
		return
	}
	id := p.Expression.(*ast.Identifier)
	name = id.Name
	return
}

// handleReturn mirrors handleWith's "projections blind to new names, ORDER
// BY aware of them" sequencing, plus a duplicate-column-name check unless
// the clause includes `*`.
func handleReturn(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	r := n.(*ast.Return)
	ctx.Clause = ClauseReturn

	if dec := validateLimitSkip(ctx, r.Limit, r.Skip); dec == Break {
		return Break
	}

	if !r.Star {
		seen := make(map[string]bool, len(r.Projections))
		for idx, p := range r.Projections {
			name := returnColumnName(p, idx)
			if seen[name] {
				return ctx.Fail(ErrDuplicateColumns.New())
			}
			seen[name] = true
		}
	}

	for _, p := range r.Projections {
		if defaultDriver.Visit(ctx, p) == Break {
			return Break
		}
	}

	for _, p := range r.Projections {
		if p.Alias != "" {
			ctx.Defined.Insert(p.Alias, env.Untyped)
		}
	}

	if r.OrderBy != nil {
		if defaultDriver.Visit(ctx, r.OrderBy) == Break {
			return Break
		}
	}

	return Continue
}

// returnColumnName is the name a RETURN projection contributes to the
// result set: its alias, or the bare identifier it projects, or — for an
// unaliased non-identifier expression such as `RETURN 1+1` — a synthetic
// per-position name that can never collide with a real column.
func returnColumnName(p *ast.Projection, idx int) string {
	if p.Alias != "" {
		return p.Alias
	}
	if id, ok := p.Expression.(*ast.Identifier); ok {
		return id.Name
	}
	return fmt.Sprintf("$%d", idx)
}
