package sacct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lsst-dm/ldf-ops-tools/process"
)

// sacct emits this on stderr for jobs that were requeued after a node failure
// and then completed; the data are fine and the warning is swallowed.  Any
// other stderr output is fatal.

const benignWarning = "Conflicting JOB_TERMINATED record (COMPLETED)"

type GatherOptions struct {
	// Comma-separated user list; all users if empty and Jobs is empty.
	Users string

	// Comma-separated job list; precludes Users.
	Jobs string

	// Comma-separated ids of failed jobs to include anyway.  Only sensible
	// together with Jobs.
	Failed string

	// Path of the sacct executable, "sacct" if empty.
	Sacct string
}

// The ids from the Failed option, for the reconciliation allow-list.

func (g *GatherOptions) FailedIds() []string {
	if g.Failed == "" {
		return nil
	}
	return strings.Split(g.Failed, ",")
}

// Build the sacct argument list.  Completed jobs and node failures are always
// requested, since a node-failed job may have completed after rescheduling;
// explicitly allow-listed failed jobs are requested too.

func (g *GatherOptions) Argv() []string {
	argv := []string{"--format=" + strings.Join(FieldNames, ",")}
	states := "CD,NF"
	switch {
	case g.Jobs != "":
		jobs := g.Jobs
		if g.Failed != "" {
			jobs = jobs + "," + g.Failed
			states = "CD,NF,F"
		}
		argv = append(argv, "--jobs="+jobs)
	case g.Users != "":
		argv = append(argv, "--user="+g.Users)
	default:
		argv = append(argv, "--allusers")
	}
	argv = append(argv, "--state="+states, "--delimiter=,", "--noheader", "--parsable2")
	return argv
}

// Run sacct and parse its output into records.  Steps are included; the
// caller applies Reconcile.

func Gather(options *GatherOptions) ([]*JobRecord, error) {
	sacct := options.Sacct
	if sacct == "" {
		sacct = "sacct"
	}
	stdout, stderr, err := process.RunSubprocess(sacct, options.Argv())
	if err != nil {
		return nil, errors.Join(errors.New("Failed to gather accounting data"), err, errors.New(stderr))
	}
	if stderr != "" && !strings.Contains(stderr, benignWarning) {
		return nil, fmt.Errorf("Failed to gather accounting data\n%s", stderr)
	}
	return ParseRecords(strings.NewReader(stdout), ',')
}
