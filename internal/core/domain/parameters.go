package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

// TempStem is the literal path stem that requests a generated scratch path.
const TempStem = "temp"

// Scratch lazily provides the private scratch directory of the owning program.
type Scratch interface {
	// Path returns the directory, creating it on first use.
	Path() (string, error)
}

// ExtensionResolver infers the missing extension of an existing file from its
// sibling files. Implementations return the input path with a suffix appended,
// or unchanged when no sibling shares the stem.
type ExtensionResolver interface {
	Resolve(path string) (string, error)
}

// Param is one named argument for a tool invocation. Values of any type are
// accepted and coerced to their string representation at insertion time.
type Param struct {
	Name  string
	Value any
}

type entry struct {
	name  string
	value string
}

// Parameters is the ordered set of named arguments of one tool invocation.
// Names are unique and keep insertion order; values are always strings after
// insertion. Assignments apply the temp-placeholder and extension-inference
// rules exactly once, at Set time.
type Parameters struct {
	entries []entry
	index   map[string]int
	scratch Scratch
	infer   ExtensionResolver
	clock   clockwork.Clock
}

// NewParameters creates an empty parameter set. scratch and infer may be nil,
// disabling the corresponding substitution rule. A nil clock falls back to
// the real clock.
func NewParameters(scratch Scratch, infer ExtensionResolver, clock clockwork.Clock) *Parameters {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Parameters{
		index:   make(map[string]int),
		scratch: scratch,
		infer:   infer,
		clock:   clock,
	}
}

// Set coerces value to a string and stores it under name, replacing any
// previous value but keeping the original insertion position.
//
// Two substitution rules apply, in order:
//   - a value whose stem is exactly "temp" and which does not exist on disk
//     is rewritten to "<scratch>/<name>_<unix><suffix>";
//   - a value naming an existing file without an extension gets its extension
//     inferred from sibling files.
func (p *Parameters) Set(name string, value any) error {
	v := fmt.Sprint(value)

	stem, suffix := splitStemSuffix(v)
	_, statErr := os.Stat(v)
	exists := statErr == nil

	switch {
	case stem == TempStem && !exists && p.scratch != nil:
		dir, err := p.scratch.Path()
		if err != nil {
			return zerr.Wrap(err, "failed to substitute temp placeholder")
		}
		v = filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, p.clock.Now().Unix(), suffix))
	case exists && suffix == "" && p.infer != nil:
		resolved, err := p.infer.Resolve(v)
		if err != nil {
			return zerr.Wrap(err, "failed to infer file extension")
		}
		v = resolved
	}

	if i, ok := p.index[name]; ok {
		p.entries[i].value = v
		return nil
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, entry{name: name, value: v})
	return nil
}

// Get returns the stored (post-substitution) value for name.
func (p *Parameters) Get(name string) (string, bool) {
	i, ok := p.index[name]
	if !ok {
		return "", false
	}
	return p.entries[i].value, true
}

// Names returns the parameter names in insertion order.
func (p *Parameters) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	return len(p.entries)
}

// Formatted renders one "-NAME=value" token per entry, in insertion order,
// with the name upper-cased. The result slots directly into a Command.
func (p *Parameters) Formatted() []string {
	tokens := make([]string, len(p.entries))
	for i, e := range p.entries {
		tokens[i] = fmt.Sprintf("-%s=%s", strings.ToUpper(e.name), e.value)
	}
	return tokens
}

// String joins the formatted tokens with spaces, for verbose headers.
func (p *Parameters) String() string {
	return strings.Join(p.Formatted(), " ")
}

// splitStemSuffix splits the final path element into its stem and extension.
func splitStemSuffix(path string) (stem, suffix string) {
	base := filepath.Base(path)
	suffix = filepath.Ext(base)
	return strings.TrimSuffix(base, suffix), suffix
}
