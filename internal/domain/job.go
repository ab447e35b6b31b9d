package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobPending     JobStatus = "pending"
	JobExtracting  JobStatus = "extracting"
	JobStructuring JobStatus = "structuring"
	JobRendering   JobStatus = "rendering"
	JobDone        JobStatus = "done"
	JobFailed      JobStatus = "failed"
)

// FormatJob tracks one request through the pipeline. It lives only for the
// duration of that request and is used for logging.
type FormatJob struct {
	ID         uuid.UUID `json:"id"`
	SourceName string    `json:"source_name,omitempty"`
	Strategy   string    `json:"strategy,omitempty"`
	Status     JobStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewFormatJob(sourceName string) *FormatJob {
	now := time.Now()
	return &FormatJob{
		ID:         uuid.New(),
		SourceName: sourceName,
		Status:     JobPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Advance moves the job to status s.
func (j *FormatJob) Advance(s JobStatus) {
	j.Status = s
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with err's message.
func (j *FormatJob) Fail(err error) {
	j.Advance(JobFailed)
	if err != nil {
		j.Error = err.Error()
	}
}

// Elapsed is the time since the job was created.
func (j *FormatJob) Elapsed() time.Duration {
	return time.Since(j.CreatedAt)
}
