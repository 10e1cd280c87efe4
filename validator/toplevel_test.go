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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherql/cyphervalidate/ast"
)

func returnOne(alias string) *ast.Return {
	return ast.NewReturn(false, []*ast.Projection{ast.NewProjection(ast.NewLiteral(1), alias)}, nil, nil, nil)
}

func TestFlattenClausesExpandsUnionBranches(t *testing.T) {
	require := require.New(t)

	branch2 := ast.NewQuery(returnOne("a"))
	q := ast.NewQuery(returnOne("a"), ast.NewUnion(false, branch2))

	flat := flattenClauses(q)
	require.Len(flat, 3)
	require.Equal(ast.KindReturn, flat[0].Kind())
	require.Equal(ast.KindUnion, flat[1].Kind())
	require.Equal(ast.KindReturn, flat[2].Kind())
}

func TestValidateQueryTerminationRejectsClauseAfterReturn(t *testing.T) {
	require := require.New(t)

	match := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("n"))), nil)
	clauses := []ast.Node{returnOne("a"), match}

	err := validateQueryTermination(clauses)
	require.Error(err)
	require.True(ErrUnexpectedClauseAfterReturn.Is(err))
}

func TestValidateQueryTerminationAllowsReturnFollowedByUnion(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{returnOne("a"), ast.NewUnion(false, ast.NewQuery(returnOne("a"))), returnOne("a")}
	err := validateQueryTermination(clauses)
	require.NoError(err)
}

func TestValidateQueryTerminationAcceptsCallAsLastClause(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{ast.NewCall("db.labels", nil, nil)}
	err := validateQueryTermination(clauses)
	require.NoError(err)
}

func TestValidateQueryTerminationRejectsNonTerminalLastClause(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{ast.NewUnwind(ast.NewLiteral([]interface{}{1}), "x")}
	err := validateQueryTermination(clauses)
	require.Error(err)
	require.True(ErrQueryConclusion.Is(err))
}

func TestValidateQueryStartRejectsWithStar(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{ast.NewWith(true, nil, nil, nil, nil, nil)}
	err := validateQueryStart(clauses)
	require.Error(err)
	require.True(ErrQueryBeginWithStar.Is(err))
}

func TestValidateQueryStartAllowsNonStarReturn(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{returnOne("a")}
	err := validateQueryStart(clauses)
	require.NoError(err)
}

func TestValidateClauseOrderRequiresWithAfterUpdate(t *testing.T) {
	require := require.New(t)

	create := ast.NewCreate(ast.NewPattern(ast.NewPatternPath(node("n"))))
	match := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("m"))), nil)

	err := validateClauseOrder([]ast.Node{create, match})
	require.Error(err)
	require.True(ErrWithRequiredAfterUpdate.Is(err))
}

func TestValidateClauseOrderWithResetsUpdateFlag(t *testing.T) {
	require := require.New(t)

	create := ast.NewCreate(ast.NewPattern(ast.NewPatternPath(node("n"))))
	with := ast.NewWith(true, nil, nil, nil, nil, nil)
	match := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("m"))), nil)

	err := validateClauseOrder([]ast.Node{create, with, match})
	require.NoError(err)
}

func TestValidateClauseOrderRequiresWithAfterOptionalMatch(t *testing.T) {
	require := require.New(t)

	optional := ast.NewMatch(true, ast.NewPattern(ast.NewPatternPath(node("n"))), nil)
	plain := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("m"))), nil)

	err := validateClauseOrder([]ast.Node{optional, plain})
	require.Error(err)
	require.True(ErrWithRequiredAfterOptionalMatch.Is(err))
}

func TestValidateUnionClausesRejectsColumnMismatch(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{
		returnOne("a"),
		ast.NewUnion(false, ast.NewQuery(returnOne("b"))),
		returnOne("b"),
	}
	err := validateUnionClauses(clauses)
	require.Error(err)
	require.True(ErrUnionColumnMismatch.Is(err))
}

func TestValidateUnionClausesRejectsCountMismatch(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{
		returnOne("a"),
		ast.NewUnion(false, ast.NewQuery(returnOne("a"))),
		ast.NewUnion(false, ast.NewQuery(returnOne("a"))),
	}
	err := validateUnionClauses(clauses)
	require.Error(err)
	require.True(ErrUnionCountMismatch.Is(err))
}

func TestValidateUnionClausesAcceptsMatchingColumns(t *testing.T) {
	require := require.New(t)

	clauses := []ast.Node{
		returnOne("a"),
		ast.NewUnion(false, ast.NewQuery(returnOne("a"))),
		returnOne("a"),
	}
	err := validateUnionClauses(clauses)
	require.NoError(err)
}

func TestValidateAllShortestPathsAllowsInsideMatchPattern(t *testing.T) {
	require := require.New(t)

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	sp := ast.NewShortestPath(false, path)
	match := ast.NewMatch(false, ast.NewPattern(sp), nil)

	require.True(validateAllShortestPaths(match))
}

func TestValidateAllShortestPathsRejectsInsidePredicate(t *testing.T) {
	require := require.New(t)

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	sp := ast.NewShortestPath(false, path)
	match := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("n"))), sp)

	require.False(validateAllShortestPaths(match))
}

func TestValidateShortestPathsRejectsOutsideMatchWithOrReturn(t *testing.T) {
	require := require.New(t)

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	sp := ast.NewShortestPath(true, path)
	del := ast.NewDelete(false, sp)

	require.False(validateShortestPaths(del))
}

func TestValidateParseResultSkipsLeadingComments(t *testing.T) {
	require := require.New(t)

	stmt := ast.NewStatement(ast.NewQuery(returnOne("a")))
	roots := []ast.Node{ast.NewLineComment(), ast.NewBlockComment(), stmt}

	got, err := ValidateParseResult(roots)
	require.NoError(err)
	require.Same(stmt, got)
}

func TestValidateParseResultRejectsEmptyRootList(t *testing.T) {
	require := require.New(t)

	_, err := ValidateParseResult(nil)
	require.Error(err)
	require.True(ErrEmptyQuery.Is(err))
}

func TestValidateParseResultRejectsNonStatementRoot(t *testing.T) {
	require := require.New(t)

	_, err := ValidateParseResult([]ast.Node{ast.NewQuery(returnOne("a"))})
	require.Error(err)
	require.True(ErrUnsupportedQueryType.Is(err))
}

func TestValidateAcceptsCreateIndexWithoutStructuralChecks(t *testing.T) {
	require := require.New(t)

	ci := ast.NewCreateIndex("", "Person", "name")
	stmt := ast.NewStatement(ci)

	err := Validate(stmt, testProcedures(), testFunctions(), nil)
	require.NoError(err)
}

func TestValidateRunsStructuralChecksForQueryBody(t *testing.T) {
	require := require.New(t)

	match := ast.NewMatch(false, ast.NewPattern(ast.NewPatternPath(node("n"))), nil)
	stmt := ast.NewStatement(ast.NewQuery(match))

	err := Validate(stmt, testProcedures(), testFunctions(), nil)
	require.Error(err)
	require.True(ErrQueryConclusion.Is(err))
}

func TestValidateRejectsNonQueryNonIndexBody(t *testing.T) {
	require := require.New(t)

	stmt := ast.NewStatement(ast.NewLiteral(1))
	err := Validate(stmt, testProcedures(), testFunctions(), nil)
	require.Error(err)
	require.True(ErrNotStatement.Is(err))
}
