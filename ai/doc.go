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


// Package ai provides abstractions for the generative text service used by
// the extraction pipeline.
//
// The package defines two interfaces: TextGenerator, which turns a prompt
// into raw text or a parsed JSON object, and Provider, which owns the
// connection lifecycle. Extraction strategies and the enhancement pass
// depend on these abstractions rather than on a concrete client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider) return INTERFACE types to
// enforce abstraction and prevent accidental coupling to concrete
// implementations:
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewTextGenerator) return CONCRETE types
// to enable test assertions and behavior injection via the mock's public
// methods (CallCount, function fields, Reset).
//
// # Failure Model
//
// GenerateObject never propagates a parse failure: a malformed response
// yields an empty map, and callers contribute zero records for that call.
// Transport errors are returned as-is; retry policy belongs to callers.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	obj, err := provider.Generator().GenerateObject(ctx, prompt, 0.3)
package ai
