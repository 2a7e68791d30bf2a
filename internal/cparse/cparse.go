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

// Package cparse runs generated headers through a C front end. The host C
// compiler supplies predefined macros and include paths.
package cparse

import (
	"errors"
	"fmt"
	"runtime"

	"modernc.org/cc/v4"
)

// ErrNoHost is returned when no host C configuration is available.
var ErrNoHost = errors.New("no host C compiler")

// HostConfig queries the host C compiler.
func HostConfig() (*cc.Config, error) {
	cfg, err := cc.NewConfig(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoHost, err)
	}
	return cfg, nil
}

// Check parses src as a C translation unit named name.
func Check(cfg *cc.Config, name string, src []byte) error {
	_, err := cc.Parse(cfg, []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
		{Name: name, Value: string(src)},
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
