package domain

import "strings"

// StageStatus represents the lifecycle state of a pipeline stage (load, fit, train).
type StageStatus string

const (
	// StagePending indicates the stage has not started.
	StagePending StageStatus = "pending"
	// StageRunning indicates the stage is executing.
	StageRunning StageStatus = "running"
	// StageCompleted indicates the stage finished successfully.
	StageCompleted StageStatus = "completed"
	// StageFailed indicates the stage failed.
	StageFailed StageStatus = "failed"
	// StageCached indicates the stage was skipped because a stored artifact was reused.
	StageCached StageStatus = "cached"
	// StageStopped indicates training ended early on the target task's signal.
	StageStopped StageStatus = "stopped"
)

// LogLevel represents the severity of a stage log message, mirroring the standard slog levels.
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

// IsTerminal checks if a status ends the stage.
func (s StageStatus) IsTerminal() bool {
	switch s {
	case StageCompleted, StageFailed, StageCached, StageStopped:
		return true
	default:
		return false
	}
}

// NormalizeStageStatus converts a string to a StageStatus, defaulting to pending if unknown.
func NormalizeStageStatus(s string) StageStatus {
	switch st := StageStatus(strings.ToLower(s)); st {
	case StagePending, StageRunning, StageCompleted, StageFailed, StageCached, StageStopped:
		return st
	default:
		return StagePending
	}
}
