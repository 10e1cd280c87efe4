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

// Package config loads the procedure/function registries the validator
// consults (spec.md §6) from a YAML file, the way auth.NewNativeFile loads
// its user table from a JSON file: read the whole file, unmarshal into a
// plain struct, then translate it into the package's real interfaces.
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	goerrors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"github.com/cypherql/cyphervalidate/registry"
)

// ErrParseRegistryFile is given when a registry file is malformed.
var ErrParseRegistryFile = goerrors.NewKind("error parsing registry file")

// variadicArgc is the YAML-facing spelling of registry.Variadic, since a
// bare -1 in a hand-edited config file reads as a typo.
const variadicArgc = "variadic"

// procedureEntry is one procedure's on-disk description.
type procedureEntry struct {
	Argc    interface{} `yaml:"argc"` // an int, or the string "variadic"
	Outputs []string    `yaml:"outputs"`
}

// functionEntry is one function's on-disk description.
type functionEntry struct {
	Aggregate bool `yaml:"aggregate"`
}

// file is the registry file's root shape.
type file struct {
	Procedures map[string]procedureEntry `yaml:"procedures"`
	Functions  map[string]functionEntry  `yaml:"functions"`
}

// Registries holds the two collaborator registries the validator needs.
type Registries struct {
	Procedures registry.MapProcedureRegistry
	Functions  *registry.MapFunctionRegistry
}

// Load reads and parses a registry file at path.
func Load(path string) (*Registries, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading registry file")
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, ErrParseRegistryFile.Wrap(err)
	}

	procs := make(registry.MapProcedureRegistry, len(f.Procedures))
	for name, entry := range f.Procedures {
		argc := registry.Variadic
		if s, ok := entry.Argc.(string); !ok || s != variadicArgc {
			argc = cast.ToInt(entry.Argc)
		}

		outputs := make(map[string]bool, len(entry.Outputs))
		for _, o := range entry.Outputs {
			outputs[o] = true
		}
		procs[name] = registry.ProcedureDescriptor{Argc: argc, Outputs: outputs}
	}

	var functions, aggregates []string
	for name, entry := range f.Functions {
		functions = append(functions, name)
		if entry.Aggregate {
			aggregates = append(aggregates, name)
		}
	}

	return &Registries{
		Procedures: procs,
		Functions:  registry.NewMapFunctionRegistry(functions, aggregates),
	}, nil
}
