// Package ai defines the AI capability boundary for retrievit.
//
// It declares the Embedder and Recommender interfaces consumed by the
// search engine, along with the AIProvider aggregate that manages their
// lifecycle. Concrete implementations live in subpackages: openai for
// OpenAI-compatible services and mock for deterministic test doubles.
// Implementations are chosen at construction time via dependency injection;
// the engine never inspects concrete types.
package ai
