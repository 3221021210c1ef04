// Package harness provides a rendering conformance harness.
//
// A scenario is a YAML file declaring a program registry (inline items
// and/or CUE definition paths) and a list of IR terms in a structured term
// encoding. The harness builds each term, renders it under the scenario's
// registry, and checks any inline expectations. Full reports can be
// compared against golden files for byte-exact regression coverage.
//
// The term encoding is harness input, not a parser for rendered output;
// rendering stays one-way.
package harness
