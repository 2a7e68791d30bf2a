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

// Package driver instantiates a template catalogue for every configured
// type and writes the result as one C header.
package driver

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ajroetker/mathgen/internal/catalog"
	"github.com/ajroetker/mathgen/internal/macro"
	"golang.org/x/sync/errgroup"
)

// Banner is the first line of every generated header.
const Banner = "// DO NOT EDIT; THIS FILE WAS GENERATED BY mathgen"

// Generator orchestrates the code generation process.
type Generator struct {
	Config    Config             // Types, guard and preamble
	Templates []catalog.Template // Catalogue, in generation order
	Verbose   bool               // Print one line per generated block
	Log       io.Writer          // Destination of verbose output
}

// Run writes the complete header: preamble, every generated block and the
// closing guard. It returns the number of blocks written.
func (g *Generator) Run(w io.Writer) (int, error) {
	if err := g.Header(w); err != nil {
		return 0, err
	}
	n, err := g.Generate(w)
	if err != nil {
		return n, err
	}
	if err := g.Footer(w); err != nil {
		return n, err
	}
	return n, nil
}

// Generate expands every template for every target it applies to. Each
// expansion is written as "\n// <description>\n<body>\n". Targets are
// expanded concurrently but written in generation order, and the first
// failing target in that order stops generation. Output and errors are the
// same as a sequential run.
func (g *Generator) Generate(w io.Writer) (int, error) {
	targets := Targets(g.Config)
	results := make([]expansion, len(targets))

	// Lowest failing target index so far. Targets after it are never
	// written, so their expansion is skipped.
	var failed atomic.Int64
	failed.Store(int64(len(targets)))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, target := range targets {
		eg.Go(func() error {
			if int64(i) > failed.Load() {
				return nil
			}
			results[i] = g.expand(target)
			if results[i].err != nil {
				for {
					cur := failed.Load()
					if int64(i) >= cur || failed.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	written := 0
	for i, res := range results {
		for _, b := range res.blocks {
			if _, err := io.WriteString(w, "\n// "+b.desc+"\n"+b.body+"\n"); err != nil {
				return written, fmt.Errorf("write %s: %w", targets[i].Name(), err)
			}
			if g.Verbose && g.Log != nil {
				fmt.Fprintf(g.Log, "  %s: %s\n", targets[i].Name(), b.desc)
			}
			written++
		}
		if res.err != nil {
			return written, res.err
		}
	}
	return written, nil
}

type block struct {
	desc string
	body string
}

// expansion holds the blocks of one target up to its first error.
type expansion struct {
	blocks []block
	err    error
}

func (g *Generator) expand(target Target) expansion {
	var res expansion
	tags := target.Tags()
	for _, tpl := range g.Templates {
		if !tpl.Matches(tags) {
			continue
		}
		b, err := instantiate(tpl, target)
		if err != nil {
			res.err = fmt.Errorf("template %q for %s: %w", tpl.String(), target.Name(), err)
			return res
		}
		res.blocks = append(res.blocks, b)
	}
	return res
}

func instantiate(tpl catalog.Template, target Target) (block, error) {
	desc, err := macro.Format(tpl.Description, nil, target.Fields())
	if err != nil {
		return block{}, fmt.Errorf("description: %w", err)
	}
	e := &macro.Evaluator{Type: target.A, Vars: target.Context()}
	body, err := e.Expand(tpl.Body)
	if err != nil {
		return block{}, err
	}
	return block{desc: desc, body: body}, nil
}

// Header writes the banner, include guard, includes, base typedefs and
// constants.
func (g *Generator) Header(w io.Writer) error {
	var sb strings.Builder
	guard := g.Config.Guard()
	sb.WriteString(Banner + "\n")
	fmt.Fprintf(&sb, "#ifndef %s\n#define %s\n", guard, guard)
	for _, inc := range g.Config.Includes() {
		fmt.Fprintf(&sb, "#include %s\n", includeSpec(inc))
	}
	sb.WriteString("\n")
	for _, k := range g.Config.Kinds() {
		fmt.Fprintf(&sb, "typedef %s %s;\n", k.CType, k.Name)
	}
	sb.WriteString("\n")
	for _, c := range g.Config.Constants() {
		fmt.Fprintf(&sb, "static const double %s = %s;\n", c.Name, strconv.FormatFloat(c.Value, 'g', -1, 64))
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// Footer closes the include guard.
func (g *Generator) Footer(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n#endif // %s\n", g.Config.Guard()); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func includeSpec(inc string) string {
	if strings.HasPrefix(inc, "<") || strings.HasPrefix(inc, `"`) {
		return inc
	}
	return "<" + inc + ">"
}
