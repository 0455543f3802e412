package types

import (
	"errors"
	"time"
)

// BlastStatus represents the state of a remote BLAST job
type BlastStatus string

const (
	// BlastSubmitted is the initial state, before the remote job id is known
	BlastSubmitted BlastStatus = "submitted"
	// BlastWaiting means the remote job is queued or running
	BlastWaiting BlastStatus = "waiting"
	// BlastReady means results are available for retrieval
	BlastReady BlastStatus = "ready"
	// BlastFailed means the remote job terminated with an error
	BlastFailed BlastStatus = "failed"
	// BlastExpired means the remote service purged the job
	BlastExpired BlastStatus = "expired"
)

// Terminal reports whether the status ends the polling loop
func (s BlastStatus) Terminal() bool {
	switch s {
	case BlastReady, BlastFailed, BlastExpired:
		return true
	case BlastSubmitted, BlastWaiting:
		return false
	}
	return false
}

// BlastJob tracks a single BLAST submission through its remote lifecycle.
// A job exists only for the duration of one blast_search invocation; it is
// never persisted or shared across requests.
type BlastJob struct {
	// RID is the request id assigned by the remote service on submission
	RID         string
	SubmittedAt time.Time
	Status      BlastStatus
}

// Validate checks that the job is internally consistent
func (j *BlastJob) Validate() error {
	if j.Status != BlastSubmitted && j.RID == "" {
		return errors.New("job past submission must have a RID")
	}
	return nil
}

// BlastReport is a parsed BLAST result set for one query
type BlastReport struct {
	RID         string
	Program     string
	Database    string
	Query       string
	QueryLength int
	Hits        []BlastHit
}

// BlastHit is one database sequence matched by the query
type BlastHit struct {
	Title     string
	Accession string
	Length    int
	HSPs      []BlastHSP
}

// BlastHSP is a single high-scoring segment pair within a hit.
// The alignment strings (QuerySeq, Midline, SubjectSeq) are empty when the
// caller requested summary output.
type BlastHSP struct {
	Score      float64
	BitScore   float64
	EValue     float64
	QueryFrom  int
	QueryTo    int
	HitFrom    int
	HitTo      int
	Identity   int
	AlignLen   int
	QuerySeq   string
	Midline    string
	SubjectSeq string
}
