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

package macro

import (
	"strconv"
	"strings"
)

// Format substitutes placeholders in pattern:
//
//	{}      the next positional argument
//	{N}     positional argument N
//	{name}  named argument
//	{{ }}   literal braces
//
// Arguments that the pattern does not reference are ignored.
func Format(pattern string, args []string, named map[string]string) (string, error) {
	if !strings.ContainsAny(pattern, "{}") {
		return pattern, nil
	}
	var sb strings.Builder
	next := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '{' && i+1 < len(pattern) && pattern[i+1] == '{':
			sb.WriteByte('{')
			i++
		case c == '}' && i+1 < len(pattern) && pattern[i+1] == '}':
			sb.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return "", &FormatError{Pattern: pattern, Reason: "unclosed '{'"}
			}
			field := pattern[i+1 : i+end]
			v, err := lookupField(pattern, field, &next, args, named)
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
			i += end
		case c == '}':
			return "", &FormatError{Pattern: pattern, Reason: "single '}'"}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

func lookupField(pattern, field string, next *int, args []string, named map[string]string) (string, error) {
	if field == "" {
		i := *next
		*next++
		if i >= len(args) {
			return "", &FormatError{Pattern: pattern, Reason: "not enough arguments for {}"}
		}
		return args[i], nil
	}
	if n, err := strconv.Atoi(field); err == nil {
		if n < 0 || n >= len(args) {
			return "", &FormatError{Pattern: pattern, Reason: "argument {" + field + "} out of range"}
		}
		return args[n], nil
	}
	if v, ok := named[field]; ok {
		return v, nil
	}
	return "", &FormatError{Pattern: pattern, Reason: "unknown field {" + field + "}"}
}
