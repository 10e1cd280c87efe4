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
	"github.com/cypherql/cyphervalidate/ast"
	"github.com/cypherql/cyphervalidate/env"
)

// handlePattern resets Intermediate once a whole pattern (MATCH/CREATE's
// comma-separated path list) has been fully walked — names under creation in
// one pattern must not leak into validation of the next (spec.md §4.5).
func handlePattern(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		ctx.Intermediate = env.New()
		return Continue
	}
	return Recurse
}

// handlePatternPath runs the per-clause entity checks on a path's own
// elements before descending into them. MATCH checks each path against a
// path-local environment and against the node/relationship/path kinds already
// in ctx.Defined; a name bound as Untyped conflicts with neither, which is why
// "WITH 1 AS x MATCH ()-[x]->() RETURN 0" is accepted.
func handlePatternPath(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	p := n.(*ast.PatternPath)

	switch ctx.Clause {
	case ClauseCreate:
		if dec := validateCreateEntities(ctx, p); dec == Break {
			return Break
		}
	case ClauseMatch:
		if dec := validateMatchEntities(ctx, p); dec == Break {
			return Break
		}
	}

	return Recurse
}

// validateCreateEntities rejects redeclaring a bound node only when the path
// is a single bare node, e.g. "MATCH (a) CREATE (a)". A path with more than
// one element may reuse a bound node as an anchor: "MATCH (a) CREATE
// (a)-[:E]->(:B)" is valid.
func validateCreateEntities(ctx *Context, p *ast.PatternPath) Decision {
	if len(p.Elements) != 1 {
		return Recurse
	}
	node, ok := p.Elements[0].(*ast.NodePattern)
	if !ok || node.Identifier == "" {
		return Recurse
	}
	if ctx.Defined.Contains(node.Identifier) {
		return ctx.Fail(ErrCreateRedeclared.New(node.Identifier))
	}
	return Recurse
}

// validateMatchEntities walks one path's alternating node/rel elements
// against a local environment scoped to this path, checking for
// node/relationship kind conflicts against ctx.Defined and for duplicate
// relationship variables within the path itself.
func validateMatchEntities(ctx *Context, p *ast.PatternPath) Decision {
	local := env.New()

	for i, elem := range p.Elements {
		var identifier string
		switch {
		case i%2 == 0:
			identifier = elem.(*ast.NodePattern).Identifier
		default:
			identifier = elem.(*ast.RelPattern).Identifier
		}
		if identifier == "" {
			continue
		}

		boundKind, bound := ctx.Defined.Find(identifier)

		if i%2 == 0 {
			if bound && boundKind == env.Edge {
				return ctx.Fail(ErrAliasNodeRelConflict.New(identifier))
			}
			if bound && boundKind == env.Path {
				return ctx.Fail(ErrAliasPathNodeConflict.New(identifier))
			}

			localKind, localBound := local.Find(identifier)
			if !localBound {
				local.Insert(identifier, env.Node)
			} else if localKind != env.Node {
				return ctx.Fail(ErrAliasNodeRelConflict.New(identifier))
			}
		} else {
			if bound && boundKind == env.Node {
				return ctx.Fail(ErrAliasNodeRelConflict.New(identifier))
			}
			if bound && boundKind == env.Path {
				return ctx.Fail(ErrAliasPathRelConflict.New(identifier))
			}

			localKind, localBound := local.Find(identifier)
			if !localBound {
				local.Insert(identifier, env.Edge)
			} else if localKind == env.Edge {
				return ctx.Fail(ErrDuplicateRelVariable.New(identifier))
			} else {
				return ctx.Fail(ErrAliasNodeRelConflict.New(identifier))
			}
		}
	}

	return Recurse
}

// handleNodePattern validates a node's inline properties and alias before
// registering it; children are never auto-visited, the properties map is
// walked directly by validateInlineProperties (spec.md §4.5).
func handleNodePattern(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	node := n.(*ast.NodePattern)

	if dec := validateInlineProperties(ctx, node.Properties, node.Identifier); dec == Break {
		return Break
	}

	if ctx.Clause == ClauseMerge {
		if dec := validateMergeNode(ctx, node); dec == Break {
			return Break
		}
	}

	if node.Identifier == "" {
		return Continue
	}

	boundKind, bound := ctx.Defined.Find(node.Identifier)
	if bound && boundKind == env.Edge {
		return ctx.Fail(ErrAliasNodeRelConflict.New(node.Identifier))
	}
	if bound && boundKind == env.Path {
		return ctx.Fail(ErrAliasPathNodeConflict.New(node.Identifier))
	}

	ctx.Defined.Insert(node.Identifier, env.Node)
	if !bound && ctx.Clause == ClauseCreate {
		ctx.Intermediate.Insert(node.Identifier, env.Node)
	}

	return Continue
}

// validateMergeNode rejects MERGE patterns that attach labels or properties
// to a node already bound in an outer scope — the bound entity itself must
// be unambiguous, and MERGE can only constrain unbound nodes.
func validateMergeNode(ctx *Context, node *ast.NodePattern) Decision {
	if ctx.Defined.Len() == 0 || node.Identifier == "" {
		return Recurse
	}

	boundKind, bound := ctx.Defined.Find(node.Identifier)
	if !bound {
		return Recurse
	}
	if boundKind == env.Edge {
		return ctx.Fail(ErrAliasNodeRelConflict.New(node.Identifier))
	}
	if boundKind == env.Path {
		return ctx.Fail(ErrAliasPathNodeConflict.New(node.Identifier))
	}

	if len(node.Labels) > 0 || node.Properties != nil {
		return ctx.Fail(ErrMergeRedeclaredNode.New(node.Identifier))
	}
	return Recurse
}

// handleRelPattern runs CREATE/MERGE-specific relationship checks, validates
// inline properties and variable-length bounds, then registers the alias.
func handleRelPattern(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	rel := n.(*ast.RelPattern)

	if ctx.Clause == ClauseCreate {
		if rel.Identifier != "" && ctx.Defined.Contains(rel.Identifier) {
			return ctx.Fail(ErrCreateRedeclared.New(rel.Identifier))
		}
		if len(rel.RelTypes) != 1 {
			return ctx.Fail(ErrCreateRelTypeCount.New())
		}
		if rel.Direction == ast.DirectionBidirectional {
			return ctx.Fail(ErrCreateDirected.New())
		}
		if rel.VarLength != nil {
			return ctx.Fail(ErrCreateVarLength.New())
		}
	}

	if dec := validateInlineProperties(ctx, rel.Properties, rel.Identifier); dec == Break {
		return Break
	}

	if ctx.Clause == ClauseMerge {
		if dec := validateMergeRelation(ctx, rel); dec == Break {
			return Break
		}
	}

	if rel.VarLength != nil {
		start, end := 1, maxHops
		if rel.VarLength.Start != nil {
			start = *rel.VarLength.Start
		}
		if rel.VarLength.End != nil {
			end = *rel.VarLength.End
		}
		if start > end {
			return ctx.Fail(ErrVarLengthRange.New())
		}
	}

	if rel.Identifier == "" {
		return Continue
	}

	boundKind, bound := ctx.Defined.Find(rel.Identifier)
	if bound {
		// CYPHER_AST_MATCH was already validated by validateMatchEntities,
		// via its path-local environment.
		if ctx.Clause != ClauseMatch {
			switch boundKind {
			case env.Edge:
				return ctx.Fail(ErrDuplicateRelVariable.New(rel.Identifier))
			case env.Node:
				return ctx.Fail(ErrAliasNodeRelConflict.New(rel.Identifier))
			case env.Path:
				return ctx.Fail(ErrAliasPathRelConflict.New(rel.Identifier))
			}
			return Break
		}
	} else {
		ctx.Defined.Insert(rel.Identifier, env.Edge)
		if ctx.Clause == ClauseCreate {
			ctx.Intermediate.Insert(rel.Identifier, env.Edge)
		}
	}

	return Continue
}

// maxHops stands in for "effectively unbounded" when a variable-length
// range omits its upper bound.
const maxHops = int(^uint(0) >> 1)

// validateMergeRelation rejects variable-length, already-bound, and
// not-exactly-one-type relationships in a MERGE pattern. MERGE never checks
// the edge's direction: an undirected MERGE edge creates a single outgoing
// relationship.
func validateMergeRelation(ctx *Context, rel *ast.RelPattern) Decision {
	if rel.VarLength != nil {
		return ctx.Fail(ErrMergeVarLength.New())
	}
	if rel.Identifier != "" && ctx.Defined.Contains(rel.Identifier) {
		return ctx.Fail(ErrMergeRedeclaredVariable.New(rel.Identifier))
	}
	if len(rel.RelTypes) != 1 {
		return ctx.Fail(ErrMergeRelTypeCount.New())
	}
	return Recurse
}

// handleNamedPath registers a path alias, rejecting a kind conflict with an
// already-bound node or relationship of the same name.
func handleNamedPath(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	np := n.(*ast.NamedPath)

	boundKind, bound := ctx.Defined.Find(np.Identifier)
	if bound && boundKind == env.Edge {
		return ctx.Fail(ErrAliasPathRelConflict.New(np.Identifier))
	}
	if bound && boundKind == env.Node {
		return ctx.Fail(ErrAliasPathNodeConflict.New(np.Identifier))
	}

	ctx.Defined.Insert(np.Identifier, env.Path)
	return Recurse
}

// handleShortestPath enforces that shortestPath(...) only spans already
// bound endpoints, and that allShortestPaths(...) never constrains a
// variable-length relationship to a minimum other than 1.
func handleShortestPath(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	sp := n.(*ast.ShortestPath)

	if sp.Single {
		elems := sp.Path.Elements
		first, _ := elems[0].(*ast.NodePattern)
		last, _ := elems[len(elems)-1].(*ast.NodePattern)
		if first == nil || last == nil || first.Identifier == "" || last.Identifier == "" {
			return ctx.Fail(ErrShortestPathBoundNodes.New())
		}
		if !ctx.Defined.Contains(first.Identifier) || !ctx.Defined.Contains(last.Identifier) {
			return ctx.Fail(ErrShortestPathBoundNodes.New())
		}
		return Recurse
	}

	for _, elem := range sp.Path.Elements {
		rel, ok := elem.(*ast.RelPattern)
		if !ok || rel.VarLength == nil {
			continue
		}
		minHops := 1
		if rel.VarLength.Start != nil {
			minHops = *rel.VarLength.Start
		}
		if minHops != 1 {
			return ctx.Fail(ErrAllShortestPathsMinLength.New())
		}
	}

	return Recurse
}
