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


// Package search implements the hybrid retrieval and ranking engine.
//
// The Engine type answers free-text queries over a transcript corpus in
// two fused stages:
//   - Semantic retrieval using vector embeddings over a flat index
//   - Lexical re-ranking using query-term overlap with stop-word filtering
//
// Near-duplicate spans from the same video are collapsed before ranks are
// assigned. A generated recommendation enriches each response when the
// recommendation service is available; enrichment failures degrade the
// response instead of failing it.
//
// Index builds run in concurrent batches on a worker pool and swap in
// atomically, so queries keep serving the previous snapshot during a
// rebuild.
package search
