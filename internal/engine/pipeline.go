package engine

import "context"

// Pipeline is an ordered, append-only chain of tool invocations. Stages run
// strictly in sequence because later stages read files earlier stages write;
// a stage's process is fully exited and drained before the next one starts.
type Pipeline struct {
	stages []*Tool
}

// NewPipeline seeds a pipeline with its first stage, so the stage list is
// never empty.
func NewPipeline(first *Tool) *Pipeline {
	return &Pipeline{stages: []*Tool{first}}
}

// Append adds a stage to the end and returns the pipeline for chaining.
func (p *Pipeline) Append(tool *Tool) *Pipeline {
	p.stages = append(p.stages, tool)
	return p
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []*Tool {
	out := make([]*Tool, len(p.stages))
	copy(out, p.stages)
	return out
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Execute runs every stage in order and collects one Output per stage.
// The first failing stage aborts the whole pipeline: its error propagates
// and the outputs gathered so far are discarded. Already-written result
// files are left on disk; there is no rollback.
func (p *Pipeline) Execute(ctx context.Context, opts ExecOptions) ([]*Output, error) {
	outputs := make([]*Output, 0, len(p.stages))
	for _, stage := range p.stages {
		out, err := stage.Execute(ctx, opts)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// String renders the verbose headers of all stages.
func (p *Pipeline) String() string {
	s := ""
	for _, stage := range p.stages {
		s += stage.VerboseHeader()
	}
	return s
}
