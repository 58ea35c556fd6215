// Package corpus implements the segment store: loading, validating, and
// flattening a transcript corpus into an ordered, immutable sequence of
// segments.
//
// The corpus source is a JSON export mapping videos to their metadata and
// ordered transcript spans. Load validates every record against the domain
// rules in core and fails atomically on the first malformed entry, so a
// store either represents the complete corpus or does not exist. Segment
// ordering is deterministic across loads of the same source, which the
// vector index relies on for stable position-based addressing.
package corpus
