package domain

// JobStatus is the outcome of a single (puzzle, mode) count job.
type JobStatus string

const (
	// JobStatusCompleted indicates the job produced a count.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job produced an error instead of a count.
	JobStatusFailed JobStatus = "failed"
	// JobStatusSkipped indicates the job never ran because its graph could not be built.
	JobStatusSkipped JobStatus = "skipped"
)

// LogLevel represents the severity of a vertex log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
