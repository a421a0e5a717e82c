// Package engine runs lint rules over one file.
//
// A pass tokenizes the file, builds the line map and suppression index,
// parses it, dispatches every selected rule in a single tree walk, drops
// suppressed diagnostics and finally asks the unused-suppression check
// which comments did nothing. Fix repeats passes, applying one patch each
// time, until nothing fixable is left or the iteration cap is hit.
//
// Nothing here is shared between files; callers parallelise across files.
package engine
