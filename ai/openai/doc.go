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


// Package openai implements the ai interfaces using OpenAI-compatible
// chat completion APIs via langchaingo. It works with OpenAI itself and
// with local servers exposing the same surface (Ollama, LocalAI, vLLM).
//
// Structured output uses JSON mode plus defensive post-processing: code
// fences are stripped and common key-quoting defects repaired before
// parsing. A response that still fails to parse is treated as empty, never
// as an error.
package openai
