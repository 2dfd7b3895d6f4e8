package agent

import "time"

// RunResult captures the outcome of one completed agent run.
type RunResult struct {
	// Output is the final assistant text, returned verbatim.
	Output string

	// Rounds is the number of completion round-trips the run took.
	Rounds int

	// ToolCalls is the total number of tool invocations executed.
	ToolCalls int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}
