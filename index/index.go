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


package index

import (
	"container/heap"
	"fmt"

	"github.com/poiesic/retrievit/core"
)

// Hit is one nearest-neighbor match: a dense position into the vector
// sequence the index was built from, plus its similarity score.
type Hit struct {
	Position int
	Score    float64 // Cosine similarity in [-1,1]
}

// Index is a flat inner-product index over L2-normalized vectors.
//
// Build consumes vectors in segment order; positions are 0-based array
// indices, stable until the next Build. The index is immutable after
// construction, so Search is safe for concurrent use without locking.
type Index struct {
	vectors [][]float32
	dim     int
}

// Build constructs an index from an ordered vector sequence.
//
// Vectors are normalized to unit length here, once, so Search reduces to a
// dot product. Any dimensionality mismatch is a fatal build error wrapping
// core.ErrRetrieval; the index is all-or-nothing.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors to index", core.ErrRetrieval)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimension vector at position 0", core.ErrRetrieval)
	}

	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector at position %d has dimension %d, index dimension is %d",
				core.ErrRetrieval, i, len(v), dim)
		}
		normalized[i] = Normalize(v)
	}

	return &Index{
		vectors: normalized,
		dim:     dim,
	}, nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Dim returns the index dimensionality.
func (ix *Index) Dim() int {
	return ix.dim
}

// Search returns the top k positions by cosine similarity to the query,
// ordered by descending score with ties broken by lower position. Returns
// fewer than k hits only when the index holds fewer than k vectors.
//
// Search never mutates index state and may be called concurrently.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", core.ErrRetrieval, k)
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query dimension %d does not match index dimension %d",
			core.ErrRetrieval, len(query), ix.dim)
	}

	q := Normalize(query)
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	// Min-heap of the k best hits seen so far; the root is the weakest
	// kept hit and the first to be displaced.
	h := make(hitHeap, 0, k)
	for pos, v := range ix.vectors {
		score := dot(q, v)
		if len(h) < k {
			heap.Push(&h, Hit{Position: pos, Score: score})
			continue
		}
		if hitLess(h[0], Hit{Position: pos, Score: score}) {
			h[0] = Hit{Position: pos, Score: score}
			heap.Fix(&h, 0)
		}
	}

	// Drain the heap weakest-first into descending order.
	hits := make([]Hit, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		hits[i] = heap.Pop(&h).(Hit)
	}
	return hits, nil
}

// hitLess reports whether a ranks strictly below b:
// lower score, or equal score with higher position.
func hitLess(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Position > b.Position
}

type hitHeap []Hit

func (h hitHeap) Len() int           { return len(h) }
func (h hitHeap) Less(i, j int) bool { return hitLess(h[i], h[j]) }
func (h hitHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *hitHeap) Push(x any)        { *h = append(*h, x.(Hit)) }
func (h *hitHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
