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

	"github.com/cypherql/cyphervalidate/ast"
	"github.com/cypherql/cyphervalidate/registry"
)

// updatingClause reports whether k is one of the clauses that mutate the
// graph (spec.md §4.7's clause-order rule treats these as a group).
func updatingClause(k ast.Kind) bool {
	switch k {
	case ast.KindCreate, ast.KindMerge, ast.KindDelete, ast.KindSet, ast.KindRemove, ast.KindForeach:
		return true
	}
	return false
}

// terminalClause reports whether k is allowed as a query's last clause.
func terminalClause(k ast.Kind) bool {
	switch k {
	case ast.KindReturn, ast.KindCreate, ast.KindMerge, ast.KindDelete, ast.KindSet, ast.KindCall, ast.KindRemove, ast.KindForeach:
		return true
	}
	return false
}

// flattenClauses lays a query's clause sequence, followed by every UNION
// branch's own clause sequence, out as one flat list — mirroring the single
// flat clause array the structural checks this validator was distilled from
// operate over, even though *ast.Union nests its branch as a child Query
// rather than splicing it into the same slice (spec.md §4.4).
func flattenClauses(q *ast.Query) []ast.Node {
	out := make([]ast.Node, 0, len(q.Clauses))
	for _, c := range q.Clauses {
		out = append(out, c)
		if u, ok := c.(*ast.Union); ok {
			if next, ok := u.Query.(*ast.Query); ok {
				out = append(out, flattenClauses(next)...)
			}
		}
	}
	return out
}

// validateQueryTermination requires that the first RETURN clause, if not
// the query's last clause, is immediately followed by a UNION, and that the
// query's actual last clause is one of the terminal kinds (spec.md §4.7).
func validateQueryTermination(clauses []ast.Node) error {
	for i, c := range clauses {
		if c.Kind() == ast.KindReturn {
			if i < len(clauses)-1 && clauses[i+1].Kind() != ast.KindUnion {
				return ErrUnexpectedClauseAfterReturn.New()
			}
			break
		}
	}

	last := clauses[len(clauses)-1]
	if !terminalClause(last.Kind()) {
		return ErrQueryConclusion.New(last.Kind().String())
	}
	return nil
}

// validateQueryStart rejects a query opening with `WITH *` or `RETURN *`,
// both meaningless as a first clause (spec.md §4.7).
func validateQueryStart(clauses []ast.Node) error {
	switch first := clauses[0].(type) {
	case *ast.With:
		if first.Star {
			return ErrQueryBeginWithStar.New("WITH")
		}
	case *ast.Return:
		if first.Star {
			return ErrQueryBeginWithStar.New("RETURN")
		}
	}
	return nil
}

// validateClauseOrder enforces that an updating clause can't be followed by
// MATCH/UNWIND/CALL without an intervening WITH, and that a non-optional
// MATCH can't follow an OPTIONAL MATCH without an intervening WITH. Both
// flags reset at every WITH (spec.md §4.7).
func validateClauseOrder(clauses []ast.Node) error {
	sawUpdate := false
	sawOptionalMatch := false

	for _, c := range clauses {
		if updatingClause(c.Kind()) {
			sawUpdate = true
		}

		if sawUpdate {
			switch c.Kind() {
			case ast.KindMatch, ast.KindUnwind, ast.KindCall:
				return ErrWithRequiredAfterUpdate.New(c.Kind().String())
			}
		}

		if m, ok := c.(*ast.Match); ok {
			if !m.Optional && sawOptionalMatch {
				return ErrWithRequiredAfterOptionalMatch.New()
			}
			if m.Optional {
				sawOptionalMatch = true
			}
		}

		if c.Kind() == ast.KindWith {
			sawUpdate = false
			sawOptionalMatch = false
		}
	}
	return nil
}

// returnColumnNames renders r's result-column names for UNION comparison.
func returnColumnNames(r *ast.Return) []string {
	names := make([]string, len(r.Projections))
	for i, p := range r.Projections {
		names[i] = returnColumnName(p, i)
	}
	return names
}

// validateUnionClauses requires one RETURN clause more than there are UNION
// clauses, and requires every branch's RETURN to produce the same ordered
// column names (spec.md §4.7).
func validateUnionClauses(clauses []ast.Node) error {
	var unionCount int
	var returns []*ast.Return
	for _, c := range clauses {
		if c.Kind() == ast.KindUnion {
			unionCount++
		}
		if r, ok := c.(*ast.Return); ok {
			returns = append(returns, r)
		}
	}
	if unionCount == 0 {
		return nil
	}
	if len(returns) != unionCount+1 {
		return ErrUnionCountMismatch.New(unionCount, len(returns))
	}

	first := returnColumnNames(returns[0])
	for _, r := range returns[1:] {
		cols := returnColumnNames(r)
		if len(cols) != len(first) {
			return ErrUnionColumnMismatch.New()
		}
		for i := range cols {
			if cols[i] != first[i] {
				return ErrUnionColumnMismatch.New()
			}
		}
	}
	return nil
}

// validateAllShortestPaths reports whether every allShortestPaths(...) in
// the tree sits inside a MATCH clause's pattern (never its predicate, and
// never anywhere else) — spec.md §4.5.
func validateAllShortestPaths(n ast.Node) bool {
	if sp, ok := n.(*ast.ShortestPath); ok && !sp.Single {
		return false
	}
	if m, ok := n.(*ast.Match); ok {
		if m.Predicate == nil {
			return true
		}
		return validateAllShortestPaths(m.Predicate)
	}
	for _, c := range n.Children() {
		if !validateAllShortestPaths(c) {
			return false
		}
	}
	return true
}

// validateShortestPaths reports whether every shortestPath(...) in the tree
// sits inside a WITH clause, a RETURN clause, or a MATCH clause's predicate.
// One inside a MATCH clause's pattern, or anywhere else, is rejected.
func validateShortestPaths(n ast.Node) bool {
	if sp, ok := n.(*ast.ShortestPath); ok && sp.Single {
		return false
	}
	switch v := n.(type) {
	case *ast.Match:
		return validateShortestPaths(v.Pattern)
	case *ast.With, *ast.Return:
		return true
	}
	for _, c := range n.Children() {
		if !validateShortestPaths(c) {
			return false
		}
	}
	return true
}

// ValidateParseResult picks the single statement out of a parser's root
// list, skipping leading comments (spec.md §4.7.1).
func ValidateParseResult(roots []ast.Node) (*ast.Statement, error) {
	for _, r := range roots {
		switch r.Kind() {
		case ast.KindLineComment, ast.KindBlockComment, ast.KindComment:
			continue
		}
		stmt, ok := r.(*ast.Statement)
		if !ok {
			return nil, ErrUnsupportedQueryType.New(r.Kind().String())
		}
		return stmt, nil
	}
	return nil, ErrEmptyQuery.New()
}

// runVisitor drives the handler table over root with a fresh Context and
// returns its single recorded diagnostic, if any.
func runVisitor(root ast.Node, procs registry.ProcedureRegistry, funcs registry.FunctionRegistry, log *logrus.Entry) error {
	ctx := newContext(procs, funcs, log)
	defaultDriver.Visit(ctx, root)
	return ctx.Err
}

// Validate runs every structural check spec.md §4.7 requires and then the
// full scope/identifier visitor walk (§4.2-§4.6) over stmt's body. Index
// creation/drop bodies skip straight to the visitor walk — clause ordering,
// termination and UNION rules don't apply to them (spec.md §4.7).
func Validate(stmt *ast.Statement, procs registry.ProcedureRegistry, funcs registry.FunctionRegistry, log *logrus.Entry) error {
	switch body := stmt.Body.(type) {
	case *ast.CreateIndex:
		return runVisitor(body, procs, funcs, log)
	case *ast.DropIndex:
		return runVisitor(body, procs, funcs, log)
	case *ast.Query:
		clauses := flattenClauses(body)
		if len(clauses) == 0 {
			return ErrEmptyQuery.New()
		}
		if err := validateQueryTermination(clauses); err != nil {
			return err
		}
		if err := validateQueryStart(clauses); err != nil {
			return err
		}
		if err := validateClauseOrder(clauses); err != nil {
			return err
		}
		if err := validateUnionClauses(clauses); err != nil {
			return err
		}
		if !validateAllShortestPaths(body) {
			return ErrAllShortestPathsPlacement.New()
		}
		if !validateShortestPaths(body) {
			return ErrShortestPathPlacement.New()
		}
		return runVisitor(body, procs, funcs, log)
	default:
		return ErrNotStatement.New()
	}
}
