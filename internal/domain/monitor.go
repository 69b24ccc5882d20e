package domain

import (
	"fmt"
	"strings"
	"time"
)

type MonitoringStatus string

const (
	MonitoringStatusMonitoring MonitoringStatus = "monitoring"
	MonitoringStatusCompleted  MonitoringStatus = "completed"
	MonitoringStatusFailed     MonitoringStatus = "failed"
	MonitoringStatusTimeout    MonitoringStatus = "timeout"
)

type StopReason string

const (
	StopReasonCompleted StopReason = "completed"
	StopReasonFailed    StopReason = "failed"
	StopReasonTimeout   StopReason = "timeout"
	StopReasonCapacity  StopReason = "capacity_eviction"
	StopReasonShutdown  StopReason = "shutdown"
	StopReasonManual    StopReason = "manual"
)

type MonitoringConfig struct {
	MonitoringID        string
	OriginalPath        string
	TargetPath          string
	OrchestratorSession string
	AssignmentPrompt    string
	MaxAttempts         int
	Timeout             time.Duration
	TaskID              string
}

func (c MonitoringConfig) Validate() error {
	if strings.TrimSpace(c.OriginalPath) == "" {
		return fmt.Errorf("%w: original path is required", ErrValidation)
	}
	if strings.TrimSpace(c.TargetPath) == "" {
		return fmt.Errorf("%w: target path is required", ErrValidation)
	}
	if strings.TrimSpace(c.OrchestratorSession) == "" {
		return fmt.Errorf("%w: orchestrator session is required", ErrValidation)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: max attempts must not be negative", ErrValidation)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrValidation)
	}

	return nil
}

// MonitoringJob is a read-only view of a job owned by the acceptance monitor.
type MonitoringJob struct {
	Config         MonitoringConfig
	StartTime      time.Time
	CurrentAttempt int
	Status         MonitoringStatus
}
