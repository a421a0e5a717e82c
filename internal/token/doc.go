// Package token defines Python lexical token kinds.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Start/End lines are 1-based, columns are 0-based byte offsets in the line.
//   - Structural tokens (INDENT text aside) may be empty: NEWLINE at EOF without
//     a trailing newline, DEDENT and ENDMARKER are always empty.
package token
