package engine

import (
	"context"

	"go.trai.ch/saga/internal/core/domain"
)

// Library is a named tool library inside the program, e.g. "ta_morphometry".
// It references its parent by pointer and carries its own flag copy.
type Library struct {
	program *Program
	name    string
	flag    domain.Flag
}

// Name returns the library name.
func (l *Library) Name() string {
	return l.name
}

// Program returns the owning program.
func (l *Library) Program() *Program {
	return l.program
}

// Flag returns the current flag.
func (l *Library) Flag() domain.Flag {
	return l.flag
}

// SetFlag sets the flag for this library only.
func (l *Library) SetFlag(token string) {
	l.flag = domain.NewFlag(token)
}

// ClearFlag removes the flag. Clearing an unset flag is caller misuse.
func (l *Library) ClearFlag() error {
	if !l.flag.IsSet() {
		return domain.ErrFlagNotSet
	}
	l.flag = domain.Flag{}
	return nil
}

// Command assembles "[path, flag?, library]".
func (l *Library) Command() domain.Command {
	return domain.NewCommand(l.program.path.String(), l.flag.String(), l.name)
}

// Tool descends to the named tool. The child inherits this library's flag.
func (l *Library) Tool(name string) *Tool {
	return &Tool{
		library: l,
		name:    name,
		flag:    l.flag,
		params:  l.program.newParameters(),
	}
}

// Execute invokes the library level, e.g. to list its tools.
func (l *Library) Execute(ctx context.Context, opts ExecOptions) (*Output, error) {
	capture, err := l.program.executor.Run(ctx, l.Command(), nil)
	if err != nil {
		return nil, err
	}
	return newOutput(l.name, l.program, nil, capture, opts.IgnoreStderr)
}
