package engine

import "errors"

// ErrParse marks a file that could not be tokenized or parsed. The
// underlying *lexer.Error or *cst.ParseError is wrapped alongside.
var ErrParse = errors.New("cannot parse file")
