package token

// Kind represents the category of a source token.
// Names follow the CPython tokenize module so dumps are comparable.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Encoding is the leading pseudo-token carrying the source encoding.
	Encoding
	// Name is an identifier or keyword.
	Name
	// Number is a numeric literal.
	Number
	// String is a string or bytes literal, including triple-quoted and prefixed forms.
	String
	// Op is an operator or delimiter.
	Op
	// Comment is a '#' comment up to (not including) the line terminator.
	Comment
	// Newline ends a logical line.
	Newline
	// NL is a non-logical line break: blank lines, comment-only lines, breaks inside brackets.
	NL
	// Indent opens an indented block; its text is the new indentation.
	Indent
	// Dedent closes an indented block.
	Dedent
	// EndMarker is the final token, one line past the last source line.
	EndMarker
)

var kindNames = [...]string{
	Invalid:   "ERRORTOKEN",
	Encoding:  "ENCODING",
	Name:      "NAME",
	Number:    "NUMBER",
	String:    "STRING",
	Op:        "OP",
	Comment:   "COMMENT",
	Newline:   "NEWLINE",
	NL:        "NL",
	Indent:    "INDENT",
	Dedent:    "DEDENT",
	EndMarker: "ENDMARKER",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsStructural reports whether the kind carries no program content:
// indentation markers, the encoding pseudo-token and comments.
func (k Kind) IsStructural() bool {
	switch k {
	case Indent, Dedent, Encoding, Comment:
		return true
	default:
		return false
	}
}

// EndsLogicalLine reports whether the kind closes a logical line.
func (k Kind) EndsLogicalLine() bool {
	return k == Newline || k == NL || k == EndMarker
}
