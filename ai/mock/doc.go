// Package mock provides test doubles for the ai package interfaces.
//
// The mocks record call counts and prompts, and accept injectable function
// fields so tests can script responses and failures without touching a
// real text-generation service.
package mock
