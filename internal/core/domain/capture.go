package domain

// Capture holds the drained output of a completed child process. The exit
// code is recorded for logging only: saga_cmd reports tool failures through
// stderr, not through its exit status.
type Capture struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
