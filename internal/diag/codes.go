package diag

import (
	"regexp"
)

// Code is a rule identifier as written in suppression comments.
type Code string

var codeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Valid reports whether c can appear in a suppression comment code list.
func (c Code) Valid() bool {
	return codeRe.MatchString(string(c))
}

func (c Code) ID() string {
	if c == "" {
		return "Unknown"
	}
	return string(c)
}

func (c Code) String() string {
	return c.ID()
}
