// Package diag defines the diagnostic record shared by rules, the lint
// engine and output formatters.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – the rule identifier as it appears in suppression comments,
//     e.g. "NoBareExcept". Codes are letters, digits, '-' and '_'.
//   - Message – short human text; rules must provide one.
//   - Path, Pos – where the rule fired. Pos.Line is 1-based, Pos.Col is a
//     0-based byte column; formatters print the column 1-based.
//   - Primary – the byte span of the offending node within its FileSet.
//   - Patch – optional auto-fix, a single textual substitution.
//
// Package diag performs no IO. Rendering lives in internal/diagfmt,
// application of patches in internal/fix and internal/engine.
//
// # Emitting diagnostics
//
// Rules report through rule.Context, which forwards to a diag.Reporter.
// BagReporter collects into a Bag that supports sorting, deduplication and
// filtering; DedupReporter drops exact repeats on the way.
package diag
