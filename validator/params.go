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

// validateOptionsOnly rejects EXPLAIN/PROFILE, the only two statement
// options this dialect recognizes and the only two it still refuses to run
// (spec.md §4.7.2).
func validateOptionsOnly(opts []ast.Node) error {
	for _, o := range opts {
		switch o.Kind() {
		case ast.KindExplainOption, ast.KindProfileOption:
			return ErrUnsupportedOption.New()
		}
	}
	return nil
}

// collectParameters gathers every `$name` reference reachable from n.
func collectParameters(n ast.Node) []string {
	var out []string
	if p, ok := n.(*ast.Parameter); ok {
		out = append(out, p.Name)
	}
	for _, c := range n.Children() {
		out = append(out, collectParameters(c)...)
	}
	return out
}

// validateDuplicateParameters rejects a statement option set that binds the
// same parameter name twice (spec.md §4.7.2).
func validateDuplicateParameters(opts []ast.Node) error {
	seen := make(map[string]bool)
	for _, o := range opts {
		for _, name := range collectParameters(o) {
			if seen[name] {
				return ErrDuplicateParameter.New(name)
			}
			seen[name] = true
		}
	}
	return nil
}

// ValidateParams runs the statement-option checks spec.md §4.7.2 requires
// (no EXPLAIN/PROFILE, no duplicate parameter names) and then an
// independent, fresh-Context visitor pass over the whole statement —
// distinct from Validate's pass over just the body, since an option's
// parameter expressions sit outside it (spec.md §4.7.2). A statement with no
// options is accepted without running any of these checks.
func ValidateParams(roots []ast.Node, procs registry.ProcedureRegistry, funcs registry.FunctionRegistry, log *logrus.Entry) error {
	stmt, err := ValidateParseResult(roots)
	if err != nil {
		return err
	}
	if len(stmt.Options) == 0 {
		return nil
	}
	if err := validateOptionsOnly(stmt.Options); err != nil {
		return err
	}
	if err := validateDuplicateParameters(stmt.Options); err != nil {
		return err
	}
	return runVisitor(stmt, procs, funcs, log)
}
