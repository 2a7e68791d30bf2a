// Copyright 2025 go-highway Authors
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

// Command mathgen generates a C header of type-specialized scalar, vector,
// matrix and rotor arithmetic from a template catalogue.
//
// Usage:
//
//	mathgen [flags] OUTPUT
//
// Examples:
//
//	mathgen include/pshine/math.h
//	mathgen --kinds f32 --no-rotors -v math.h
//	mathgen --check include/pshine/math.h
//	mathgen --templates extra.txtar --include '"pshine/util.h"' math.h
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ajroetker/mathgen/internal/catalog"
	"github.com/ajroetker/mathgen/internal/cparse"
	"github.com/ajroetker/mathgen/internal/driver"
	"github.com/ajroetker/mathgen/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mathgen: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	templates string
	kinds     []string
	guard     string
	includes  []string
	noRotors  bool
	check     bool
	verbose   bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.templates, "templates", "", "template catalogue `file` (txtar); the built-in catalogue when empty")
	fs.StringSliceVar(&o.kinds, "kinds", []string{"f32", "f64", "fx32"}, "base kinds to generate, in order")
	fs.StringVar(&o.guard, "guard", "", "include guard macro (default derived from OUTPUT)")
	fs.StringArrayVar(&o.includes, "include", nil, "additional header to include (repeatable)")
	fs.BoolVar(&o.noRotors, "no-rotors", false, "skip rotor types")
	fs.BoolVar(&o.check, "check", false, "parse the generated header with a C front end before writing it")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "print every generated block")
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "mathgen [flags] OUTPUT",
		Short:         "Generate type-specialized C math from templates",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func (o *options) run(cmd *cobra.Command, output string) error {
	kinds := make([]*types.Kind, 0, len(o.kinds))
	for _, name := range o.kinds {
		k, err := types.GetKind(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
	}

	templates := catalog.Default()
	if o.templates != "" {
		var err error
		if templates, err = catalog.Load(o.templates); err != nil {
			return err
		}
	}

	guard := o.guard
	if guard == "" {
		guard = guardFor(output)
	}

	includes := append(slices.Clone(driver.DefaultIncludes), o.includes...)
	cfg, err := driver.NewConfig(
		driver.WithKinds(kinds...),
		driver.WithGuard(guard),
		driver.WithIncludes(includes...),
		driver.WithRotors(!o.noRotors),
	)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	g := &driver.Generator{
		Config:    cfg,
		Templates: templates,
		Verbose:   o.verbose,
		Log:       cmd.ErrOrStderr(),
	}

	if o.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Generating %s (%d templates, kinds %s)\n",
			output, len(templates), strings.Join(o.kinds, ", "))
	}

	// Nothing touches the output file until generation has succeeded.
	var buf bytes.Buffer
	n, err := g.Run(&buf)
	if err != nil {
		return fmt.Errorf("generate %s: %w", output, err)
	}
	if o.check {
		host, err := cparse.HostConfig()
		if err != nil {
			return err
		}
		if err := cparse.Check(host, output, buf.Bytes()); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (%d blocks)\n", output, n)
	return nil
}

// guardFor derives an include guard from the output file name:
// "math.h" becomes "MATH_H_".
func guardFor(output string) string {
	name := cases.Upper(language.Und).String(filepath.Base(output))
	guard := strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' {
			return r
		}
		return '_'
	}, name)
	if guard == "" || '0' <= guard[0] && guard[0] <= '9' {
		guard = "_" + guard
	}
	return guard + "_"
}
