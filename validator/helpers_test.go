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
	"github.com/cypherql/cyphervalidate/registry"
)

func testFunctions() *registry.MapFunctionRegistry {
	return registry.NewMapFunctionRegistry(
		[]string{"toJSON", "toUpper", "toInteger", "rand"},
		[]string{"count", "sum", "avg", "collect"},
	)
}

func testProcedures() registry.MapProcedureRegistry {
	return registry.MapProcedureRegistry{
		"db.labels": registry.ProcedureDescriptor{
			Argc:    0,
			Outputs: map[string]bool{"label": true},
		},
		"db.idx.fulltext.queryNodes": registry.ProcedureDescriptor{
			Argc:    2,
			Outputs: map[string]bool{"node": true, "score": true},
		},
		"algo.variadic": registry.ProcedureDescriptor{
			Argc:    registry.Variadic,
			Outputs: map[string]bool{"result": true},
		},
	}
}

func newTestContext() *Context {
	return newContext(testProcedures(), testFunctions(), nil)
}
