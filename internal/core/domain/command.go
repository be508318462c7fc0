package domain

import "fmt"

// ExecutablePath is an absolute filesystem path that a Locator has confirmed
// to exist, be a regular file and carry the executable bit. It is immutable
// once constructed and shared by reference down the target chain.
type ExecutablePath string

func (p ExecutablePath) String() string {
	return string(p)
}

// Command is one fully assembled invocation: an ordered sequence of non-empty
// argv tokens. Tokens are passed to the child process as a literal argument
// vector, never concatenated into a shell string.
type Command struct {
	args []string
}

// NewCommand assembles a command from the given tokens, dropping empty ones.
// An unset flag therefore vanishes from the sequence instead of leaving a hole.
func NewCommand(tokens ...string) Command {
	args := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		args = append(args, tok)
	}
	return Command{args: args}
}

// Argv returns a copy of the argument vector.
func (c Command) Argv() []string {
	argv := make([]string, len(c.args))
	copy(argv, c.args)
	return argv
}

// Len returns the number of tokens.
func (c Command) Len() int {
	return len(c.args)
}

// String renders the command with each token quoted, for logs and errors.
func (c Command) String() string {
	out := ""
	for i, arg := range c.args {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%q", arg)
	}
	return out
}
