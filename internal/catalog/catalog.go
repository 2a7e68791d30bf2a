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

// Package catalog loads template catalogues.
//
// A catalogue is a txtar archive with one file per template. The file name
// holds the tags and the description, separated by a colon:
//
//	-- v m: {name} operations --
//	static inline `T `$zero(void) { return `[$Ty,$Zero]; }
//
// Catalogue order is generation order.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/tools/txtar"
)

var (
	// ErrNoTags is returned for a template whose name has no tags.
	ErrNoTags = errors.New("template has no tags")
	// ErrEmptyBody is returned for a template with nothing to expand.
	ErrEmptyBody = errors.New("template body is empty")
	// ErrEmpty is returned for an archive without templates.
	ErrEmpty = errors.New("catalogue has no templates")
)

//go:embed templates.txtar
var defaultArchive []byte

// Template is a tagged, described piece of macro text. It is applied once
// to every target that carries at least one of its tags.
type Template struct {
	Tags        []string
	Description string // pattern over the target's naming fields, e.g. "{name} type"
	Body        string
}

// Matches reports whether the template applies to a target with tags.
func (t Template) Matches(tags []string) bool {
	return lo.Some(t.Tags, tags)
}

func (t Template) String() string {
	return strings.Join(t.Tags, " ") + ": " + t.Description
}

// Parse reads a catalogue from txtar data.
func Parse(data []byte) ([]Template, error) {
	ar := txtar.Parse(data)
	if len(ar.Files) == 0 {
		return nil, ErrEmpty
	}

	templates := make([]Template, 0, len(ar.Files))
	for i, f := range ar.Files {
		tags, desc, _ := strings.Cut(f.Name, ":")
		t := Template{
			Tags:        strings.Fields(tags),
			Description: strings.TrimSpace(desc),
			Body:        strings.TrimRight(string(f.Data), "\n"),
		}
		if len(t.Tags) == 0 {
			return nil, fmt.Errorf("template %d %q: %w", i, f.Name, ErrNoTags)
		}
		if strings.TrimSpace(t.Body) == "" {
			return nil, fmt.Errorf("template %d %q: %w", i, f.Name, ErrEmptyBody)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// Load reads a catalogue file.
func Load(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	templates, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return templates, nil
}

// Default returns the built-in catalogue.
func Default() []Template {
	templates, err := Parse(defaultArchive)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalogue: %v", err))
	}
	return templates
}
