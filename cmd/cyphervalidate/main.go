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

// Command cyphervalidate runs the scope/identifier validator (package
// validator) against an AST fixture file, the way a real deployment would
// run it against a parser's output. Grounded on the pack's two Cobra CLIs,
// cuelang-cue's cmd/cue-cmd/cmd/root.go (command-tree shape) and
// termfx-morfx's cmd/morfx (flag-driven single-purpose runner).
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cypherql/cyphervalidate/config"
	"github.com/cypherql/cyphervalidate/validator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		registryPath string
		noColor      bool
		paramsOnly   bool
	)

	root := &cobra.Command{
		Use:   "cyphervalidate <fixture.json>",
		Short: "Validate a query AST fixture's scopes, clause order and identifier references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], registryPath, noColor, paramsOnly)
		},
	}

	root.Flags().StringVar(&registryPath, "registry", "", "path to a YAML procedure/function registry manifest (required)")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colorized VALID/INVALID output")
	root.Flags().BoolVar(&paramsOnly, "params-only", false, "run only the statement-option/parameter checks (spec.md §4.7.2)")

	return root
}

func runValidate(fixturePath, registryPath string, noColor, paramsOnly bool) error {
	if noColor {
		color.NoColor = true
	}
	if registryPath == "" {
		return fmt.Errorf("--registry is required")
	}

	regs, err := config.Load(registryPath)
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	raw, err := ioutil.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	roots, err := parseRoots(raw)
	if err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	log, queryID := validator.WithQueryID(logrus.NewEntry(logrus.StandardLogger()), "")
	diag := validator.NewDiagnosticLog(logrus.StandardLogger())

	var verr error
	if paramsOnly {
		verr = validator.ValidateParams(roots, regs.Procedures, regs.Functions, log)
	} else if parsed, perr := validator.ValidateParseResult(roots); perr != nil {
		verr = perr
	} else {
		verr = validator.Validate(parsed, regs.Procedures, regs.Functions, log)
	}

	diag.Validation(queryID, verr)
	printResult(verr, noColor)

	if verr != nil {
		return verr
	}
	return nil
}

func printResult(err error, noColor bool) {
	valid := color.New(color.FgGreen, color.Bold)
	invalid := color.New(color.FgRed, color.Bold)

	if err == nil {
		valid.Println("VALID")
		return
	}
	invalid.Println("INVALID")
	fmt.Println(err.Error())
}
