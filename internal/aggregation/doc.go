// Package aggregation groups canonical records into spatial buckets
// (region, governorate) and temporal buckets (calendar periods, baseline
// split, rolling windows) and computes descriptive statistics per bucket.
package aggregation
