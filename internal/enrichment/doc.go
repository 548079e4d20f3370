// Package enrichment implements the three record-enrichment stages of the
// pipeline: geospatial classification against fixed governorate and city
// tables, temporal classification against a configurable baseline date,
// and per-indicator trend analysis. All enrichers mutate records in place,
// never drop a record and never fail on malformed input.
package enrichment
