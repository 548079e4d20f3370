// Package transform converts loosely-typed raw source records into
// canonical records. One transformer exists per dataset category, selected
// through a registry lookup table; record IDs are stable content hashes and
// measurement units are inferred from indicator semantics.
package transform
