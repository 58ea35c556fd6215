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


package core

import (
	"fmt"
	"strings"
)

// ValidateVideo validates video metadata according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Title must not be empty
//   - Duration must not be negative
//
// NOT validated:
//   - URL (derivable from the video ID when absent)
//   - Engagement counters (reference data, zero is meaningful)
func ValidateVideo(video *Video) error {
	if video == nil {
		return fmt.Errorf("%w: video is nil", ErrCorpusLoad)
	}
	if video.ID == "" {
		return fmt.Errorf("%w: video id is empty", ErrCorpusLoad)
	}
	if video.Title == "" {
		return fmt.Errorf("%w: video %q has no title", ErrCorpusLoad, video.ID)
	}
	if video.Duration < 0 {
		return fmt.Errorf("%w: video %q has negative duration %f", ErrCorpusLoad, video.ID, video.Duration)
	}
	return nil
}

// ValidateSegment validates a transcript segment according to domain rules.
//
// Validation rules:
//   - VideoID must not be empty
//   - Index must not be negative
//   - Start must not be negative
//   - Duration must be positive
//   - Text must contain at least one non-whitespace character
func ValidateSegment(segment *Segment) error {
	if segment == nil {
		return fmt.Errorf("%w: segment is nil", ErrCorpusLoad)
	}
	if segment.VideoID == "" {
		return fmt.Errorf("%w: segment has no video id", ErrCorpusLoad)
	}
	if segment.Index < 0 {
		return fmt.Errorf("%w: segment %s/%d has negative index", ErrCorpusLoad, segment.VideoID, segment.Index)
	}
	if segment.Start < 0 {
		return fmt.Errorf("%w: segment %s/%d has negative start offset %f",
			ErrCorpusLoad, segment.VideoID, segment.Index, segment.Start)
	}
	if segment.Duration <= 0 {
		return fmt.Errorf("%w: segment %s/%d has non-positive duration %f",
			ErrCorpusLoad, segment.VideoID, segment.Index, segment.Duration)
	}
	if strings.TrimSpace(segment.Text) == "" {
		return fmt.Errorf("%w: segment %s/%d has empty text", ErrCorpusLoad, segment.VideoID, segment.Index)
	}
	return nil
}
