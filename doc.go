// Package evalcheck provides the shared runtime configuration for the
// evalcheck framework: a library for attaching named quality checks to
// tabular datasets of LLM interaction records.
//
// A check bundles one or more column operators with the visualization
// bindings for the score columns they produce. Each operator reshapes table
// rows into flat records, submits them to a remote scoring service, and
// merges the returned scores back onto the table as new columns. The
// concrete pieces live in the subpackages:
//
//   - table: the ordered-column table abstraction operators transform
//   - operator: the column-operator contract, registry, and built-in operators
//   - check: check composition, built-in checks, and check serialization
//   - plot: declarative visualization specs emitted alongside score columns
//
// This package holds only Settings, the value every operator binds to in
// order to acquire a remote scoring client.
package evalcheck
