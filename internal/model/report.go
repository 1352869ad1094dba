package model

// RunOutput is what one shell execution observably produced.
type RunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Equal reports whether two runs are indistinguishable to a caller.
func (o RunOutput) Equal(other RunOutput) bool {
	return o == other
}

// TestStatus is the outcome of a test run.
type TestStatus int

const (
	// Match means the payload behaved exactly like the original.
	Match TestStatus = iota
	// Mismatch means stdout, stderr or the exit code differ.
	Mismatch
	// Error means one of the runs could not be executed.
	Error
)

func (s TestStatus) String() string {
	switch s {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Report compares the original command with one generated payload.
type Report struct {
	// Index is the 0-based position of the payload in a batch.
	Index    int
	Original RunOutput
	Payload  RunOutput
	Status   TestStatus
	Err      error
}
