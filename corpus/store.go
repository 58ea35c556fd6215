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


package corpus

import (
	"github.com/poiesic/retrievit/core"
)

// Store holds the flattened corpus of transcript segments and their video
// metadata. It is built once by Load and immutable thereafter, so reads
// require no locking.
type Store struct {
	segments []*core.Segment
	videos   map[string]*core.Video
}

// Segments returns all segments in corpus order: videos in source order,
// segments in transcript order within each video. The slice is shared;
// callers must not modify it.
func (s *Store) Segments() []*core.Segment {
	return s.segments
}

// Segment returns the segment at the given dense position.
// Positions correspond to the ordering of Segments and to vector index
// positions built from it.
func (s *Store) Segment(position int) *core.Segment {
	return s.segments[position]
}

// Video looks up video metadata by id. Returns nil if unknown.
func (s *Store) Video(id string) *core.Video {
	return s.videos[id]
}

// SegmentCount returns the number of loaded segments.
func (s *Store) SegmentCount() int {
	return len(s.segments)
}

// VideoCount returns the number of loaded videos.
func (s *Store) VideoCount() int {
	return len(s.videos)
}
