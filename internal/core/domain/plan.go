package domain

import "regexp"

// PlanFileName is the pipeline definition file searched for by the loader.
const PlanFileName = "saga.yaml"

// Plan is a declarative pipeline definition: which executable to use and the
// ordered tool invocations to run against it.
type Plan struct {
	SagaCmd string
	Flag    string
	Steps   []Step
}

// Step is one tool invocation inside a plan. Params keep file order.
type Step struct {
	Name    string
	Library string
	Tool    string
	Params  []Param
}

// refPattern matches a whole-value reference to an earlier step's parameter,
// e.g. "${slope.SLOPE}".
var refPattern = regexp.MustCompile(`^\$\{([\w-]+)\.([\w-]+)\}$`)

// ParseRef reports whether value references another step's parameter and, if
// so, returns the step and parameter names. References must span the whole
// value; partial interpolation is not supported.
func ParseRef(value string) (step, param string, ok bool) {
	m := refPattern.FindStringSubmatch(value)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
