// Copyright 2025 Poiesic Systems
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


package openai

import "strings"

// stripCodeFences removes markdown code fences models wrap around JSON
// output despite JSON mode.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON attempts to fix common JSON formatting issues from LLM
// responses. It handles keys missing their opening quote, e.g.
// `{ term": "x"}` becomes `{"term": "x"}`.
func repairJSON(s string) string {
	in := []rune(s)
	var out strings.Builder
	out.Grow(len(in) + 16)

	i := 0
	for i < len(in) {
		ch := in[i]
		out.WriteRune(ch)
		i++

		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace after { or ,
		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out.WriteRune(in[i])
			i++
		}

		// A bare identifier here may be a key missing its opening quote.
		if i >= len(in) || in[i] == '"' || !isLetter(in[i]) {
			continue
		}

		keyStart := i
		for i < len(in) && (isLetter(in[i]) || in[i] == '_' || in[i] == ' ') {
			i++
		}

		if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
			// Unquoted key confirmed; insert the missing quote.
			out.WriteRune('"')
		}
		out.WriteString(string(in[keyStart:i]))
	}

	return out.String()
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
