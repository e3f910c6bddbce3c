package server

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobState represents the current state of a fit job
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCancelled JobState = "cancelled"
)

// terminal reports whether a job in this state will never change again.
func (s JobState) terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCancelled:
		return true
	}
	return false
}

// FitRequest describes one fit job as accepted by the API. Data holds
// the dataset column by column; argument and target columns are
// resolved against the model's declared names.
type FitRequest struct {
	Model         string                `json:"model"`
	Data          map[string][]float64  `json:"data"`
	Target        string                `json:"target,omitempty"`
	Loss          string                `json:"loss,omitempty"`
	Method        string                `json:"method,omitempty"`
	MaxIterations int                   `json:"maxIterations,omitempty"`
	Guesses       map[string]float64    `json:"guesses,omitempty"`
	Freeze        map[string]float64    `json:"freeze,omitempty"`
	Bounds        map[string][2]float64 `json:"bounds,omitempty"`
	WeightsColumn string                `json:"weightsColumn,omitempty"`
	SigmaColumn   string                `json:"sigmaColumn,omitempty"`
}

// ParamJSON is one fitted parameter in a response. Stderr is null when
// the error could not be estimated.
type ParamJSON struct {
	Name   string   `json:"name"`
	Value  float64  `json:"value"`
	Stderr *float64 `json:"stderr"`
	Frozen bool     `json:"frozen,omitempty"`
}

// FitResponse summarizes a finished fit for transport.
type FitResponse struct {
	Params     []ParamJSON `json:"params"`
	Cost       float64     `json:"cost"`
	Loss       string      `json:"loss"`
	Iterations int         `json:"iterations"`
	Rendered   string      `json:"rendered"`
}

// Job represents a fit job
type Job struct {
	ID        string       `json:"id"`
	State     JobState     `json:"state"`
	Request   FitRequest   `json:"request"`
	Result    *FitResponse `json:"result,omitempty"`
	StartTime time.Time    `json:"startTime"`
	EndTime   *time.Time   `json:"endTime,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// JobManager manages the lifecycle of jobs
type JobManager struct {
	mu          sync.RWMutex
	jobs        map[string]*Job
	broadcaster *EventBroadcaster
}

// NewJobManager creates a new JobManager
func NewJobManager() *JobManager {
	return &JobManager{
		jobs:        make(map[string]*Job),
		broadcaster: NewEventBroadcaster(),
	}
}

// CreateJob creates a new job with the given request
func (jm *JobManager) CreateJob(req FitRequest) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job := &Job{
		ID:        uuid.New().String(),
		State:     StatePending,
		Request:   req,
		StartTime: time.Now(),
	}

	jm.jobs[job.ID] = job
	return job
}

// GetJob retrieves a job by ID
func (jm *JobManager) GetJob(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	return job, exists
}

// ListJobs returns all jobs in creation order.
func (jm *JobManager) ListJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartTime.Before(jobs[j].StartTime)
	})
	return jobs
}

// UpdateJob atomically updates a job using the provided function
func (jm *JobManager) UpdateJob(id string, updateFn func(*Job)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	updateFn(job)
	return nil
}

// GetRunningJobs returns all jobs currently in the running state
func (jm *JobManager) GetRunningJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	runningJobs := make([]*Job, 0)
	for _, job := range jm.jobs {
		if job.State == StateRunning {
			runningJobs = append(runningJobs, job)
		}
	}
	return runningJobs
}
