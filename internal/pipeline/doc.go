// Package pipeline orchestrates the unified transformation pipeline:
// Transform → Enrich → Validate → Link → Partition over one bounded batch
// of raw records. The pipeline is synchronous per stage, stateless across
// invocations, and returns partial results when a stage fails instead of
// dropping the batch.
package pipeline
