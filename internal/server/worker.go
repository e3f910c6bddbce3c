package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/curvefit"
	"github.com/cwbudde/curvefit/models"
	"github.com/cwbudde/curvefit/opt"
	"github.com/cwbudde/curvefit/table"
)

// runJob executes a fit job in the background.
func runJob(ctx context.Context, jm *JobManager, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateRunning,
		Timestamp: time.Now(),
	})

	slog.Info("Starting fit job", "job_id", jobID, "model", job.Request.Model)

	// Check for cancellation before the expensive part
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	res, err := executeFit(job.Request)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	endTime := time.Now()
	response := toResponse(res)
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.Result = response
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	slog.Info("Fit job completed",
		"job_id", jobID,
		"elapsed", endTime.Sub(job.StartTime),
		"cost", res.Cost(),
		"result", res.String(),
	)

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:      jobID,
		State:      StateCompleted,
		Cost:       res.Cost(),
		Iterations: res.Iterations(),
		Timestamp:  time.Now(),
	})

	return nil
}

// executeFit turns a request into a fit: resolve the model, apply the
// requested freezes and bounds, assemble the dataset and run.
func executeFit(req FitRequest) (*curvefit.Result, error) {
	fn, err := models.Lookup(req.Model)
	if err != nil {
		return nil, err
	}
	if len(req.Freeze) > 0 {
		fn, err = fn.Freeze(req.Freeze)
		if err != nil {
			return nil, err
		}
	}
	if len(req.Bounds) > 0 {
		intervals := make(map[string]curvefit.Interval, len(req.Bounds))
		for name, b := range req.Bounds {
			intervals[name] = curvefit.Interval{Low: b[0], High: b[1]}
		}
		fn, err = fn.Bound(intervals)
		if err != nil {
			return nil, err
		}
	}

	tbl, err := table.FromColumns(req.Data)
	if err != nil {
		return nil, err
	}

	minimizer, err := opt.ByName(req.Method, req.MaxIterations)
	if err != nil {
		return nil, err
	}
	opts := &curvefit.FitOptions{
		Minimizer:     minimizer,
		WeightsColumn: req.WeightsColumn,
		SigmaColumn:   req.SigmaColumn,
	}
	if req.Loss != "" {
		opts.Loss = req.Loss
	}

	return fn.FitTable(tbl, req.Target, req.Guesses, opts)
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Fit job failed", "job_id", jobID, "error", err)

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateFailed,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Fit job cancelled", "job_id", jobID)

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateCancelled,
		Timestamp: time.Now(),
	})
}
