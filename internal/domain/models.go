// Package domain contains the core domain types for the batch translator.
package domain

import "errors"

var (
	// ErrTransport marks a failure reaching the inference endpoint.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse marks a response without the expected generated text.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrJobExecution marks an unexpected failure while a job was running in the pool.
	ErrJobExecution = errors.New("job execution error")
	// ErrInvalidWorkers is returned when a batch is started with fewer than one worker.
	ErrInvalidWorkers = errors.New("max workers must be greater than 0")
)

// Job is one text awaiting translation.
type Job struct {
	Index      int
	Text       string
	SourceLang string
	TargetLang string
}

// Status is the terminal state of a job.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is the result of exactly one job.
// Index and Source always identify the job the outcome belongs to.
type Outcome struct {
	Index       int    `json:"index"`
	Status      Status `json:"status"`
	Source      string `json:"source"`
	Translation string `json:"translation,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Err         error  `json:"-"`
}

// Success builds a successful outcome for job.
func Success(job Job, translation string) Outcome {
	return Outcome{
		Index:       job.Index,
		Status:      StatusSuccess,
		Source:      job.Text,
		Translation: translation,
	}
}

// Failure builds a failed outcome for job. The reason is taken from err.
func Failure(job Job, err error) Outcome {
	return Outcome{
		Index:  job.Index,
		Status: StatusFailure,
		Source: job.Text,
		Reason: err.Error(),
		Err:    err,
	}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Request is the input to the translation Lambda.
type Request struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"sourceLang"`
	TargetLang string   `json:"targetLang"`
	MaxWorkers int      `json:"maxWorkers,omitempty"`
}

// Response is the output from the translation Lambda.
type Response struct {
	Outcomes  []Outcome `json:"outcomes"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Error     string    `json:"error,omitempty"`
}
