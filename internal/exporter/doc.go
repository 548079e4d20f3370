// Package exporter writes the pipeline's output artifacts: the JSON data
// package, CSV region summaries, and Excel aggregate workbooks.
package exporter
