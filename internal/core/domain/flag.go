package domain

import "strings"

// Flag is the single optional global modifier token of an invocation, for
// example "version", "help" or "cores=8". The zero value means "no flag".
type Flag struct {
	value string
	set   bool
}

// NewFlag creates a set Flag, normalizing the token to carry a "--" prefix.
func NewFlag(token string) Flag {
	if !strings.HasPrefix(token, "--") {
		token = "--" + token
	}
	return Flag{value: token, set: true}
}

// IsSet reports whether the flag carries a token.
func (f Flag) IsSet() bool {
	return f.set
}

// String returns the normalized token, or the empty string when unset.
func (f Flag) String() string {
	if !f.set {
		return ""
	}
	return f.value
}

// Equal compares the normalized string form against a plain string.
func (f Flag) Equal(s string) bool {
	return f.String() == s
}
