// Package suppress recognises suppression comments and answers whether a
// diagnostic is suppressed by one of them.
//
// Dialects:
//
//	# noqa[: CODE, ...]                  inline, case-insensitive, current logical line
//	# noqa-file: CODE, ...: reason       whole file, codes and reason required
//	# flake8: noqa                       whole file, every code, case-insensitive
//	# lint-ignore: CODE, ...[: reason]   next non-empty logical line
//	# lint-fixme: CODE, ...[: reason]    same scope as lint-ignore
//	# lint: text                         continues the reason of the comment above
//
// Malformed directives are not suppressions and produce no warning.
//
// Index queries are pure: FindMatching returns the suppression that would
// swallow a diagnostic and MarkUsed records the fact. lint-ignore and
// lint-fixme are consulted before inline noqa, so when both cover the same
// diagnostic the noqa stays unused.
package suppress
