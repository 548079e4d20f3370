// Package domain defines the shared contract types for the canonical data
// pipeline: the Record every source is transformed into, its location,
// quality and analysis blocks, and the partition artifacts the partitioner
// produces. Types here carry json and validate tags only; behavior lives in
// the internal packages that consume them.
package domain
