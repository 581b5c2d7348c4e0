// Package pipeline runs site builds: it loads a project, builds a
// documentation tree per configured page and writes rendered HTML.
package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a site build job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusLoading   JobStatus = "loading"
	StatusBuilding  JobStatus = "building"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the state of a single site build.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	ProjectDir string `json:"project_dir"`
	SiteFile   string `json:"site_file"`
	OutputDir  string `json:"output_dir"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks build progress.
type Progress struct {
	TotalPages    int      `json:"total_pages"`
	PagesRendered int      `json:"pages_rendered"`
	Errors        []string `json:"errors"`
}

// NewJob creates a queued job with a fresh ID.
func NewJob(projectDir, siteFile, outputDir string) *Job {
	now := time.Now()
	return &Job{
		ID:         generateULID(),
		Status:     StatusQueued,
		Phase:      "queued",
		ProjectDir: projectDir,
		SiteFile:   siteFile,
		OutputDir:  outputDir,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrPagesRendered atomically increments rendered page count.
func (j *Job) IncrPagesRendered() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesRendered++
	j.UpdatedAt = time.Now()
}

// SetTotalPages records total page count.
func (j *Job) SetTotalPages(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = n
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	ProjectDir string    `json:"project_dir"`
	SiteFile   string    `json:"site_file"`
	OutputDir  string    `json:"output_dir"`
	Progress   Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:         j.ID,
		Status:     j.Status,
		Phase:      j.Phase,
		ProjectDir: j.ProjectDir,
		SiteFile:   j.SiteFile,
		OutputDir:  j.OutputDir,
		Progress: Progress{
			TotalPages:    j.Progress.TotalPages,
			PagesRendered: j.Progress.PagesRendered,
			Errors:        errs,
		},
	}
}
