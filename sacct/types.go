// Job accounting records obtained from Slurm's sacct command.
//
// A record is either a top-level job or a step (a sub-task); steps are
// distinguished by a "." separator in the job id, eg "123456.0" or
// "123456.batch".  Steps matter only for reconciliation: a job that nominally
// failed may have completed via a rescheduled step, and then the step's
// timing is authoritative.

package sacct

import (
	"strings"
	"time"
)

// Terminal job states we care about.  Anything else sacct reports (CANCELLED,
// TIMEOUT, ...) is folded into StateOther.

type State string

const (
	StateCompleted State = "COMPLETED"
	StateNodeFail  State = "NODE_FAIL"
	StateFailed    State = "FAILED"
	StateOther     State = "OTHER"
)

func ParseState(s string) State {
	// sacct can emit "CANCELLED by <uid>", hence the prefix tests.
	switch {
	case s == "COMPLETED":
		return StateCompleted
	case strings.HasPrefix(s, "NODE_FAIL"):
		return StateNodeFail
	case strings.HasPrefix(s, "FAILED"):
		return StateFailed
	default:
		return StateOther
	}
}

// One accounting entry.  Constructed once from the raw accounting text,
// possibly patched in place during reconciliation, immutable after that.

type JobRecord struct {
	Id     string
	Name   string
	Nodes  int
	Submit time.Time
	Start  time.Time
	End    time.Time
	State  State
}

// True iff the record is a step entry rather than a top-level job.

func (r *JobRecord) IsStep() bool {
	return strings.IndexByte(r.Id, '.') != -1
}

// The id of the job the record belongs to: itself for a job, the id prefix
// before the separator for a step.

func (r *JobRecord) JobId() string {
	if ix := strings.IndexByte(r.Id, '.'); ix != -1 {
		return r.Id[:ix]
	}
	return r.Id
}

// Timestamps have second resolution and no zone; sacct prints them in the
// cluster's local time.

const TimeFormat = "2006-01-02T15:04:05"
