// Package engine builds saga_cmd invocations and runs them.
//
// A Program is the root of a target chain and owns everything with
// per-program lifetime: the validated executable path, the scratch directory
// backing "temp" placeholders, and the probe caches. Libraries and tools are
// cheap values composed by reference; flags are copied downward at
// construction so children are not affected by later changes on the parent.
package engine
