package sacct

// Reconcile steps into their jobs and filter.
//
// A job whose allocation failed (NODE_FAIL, typically) may still have
// completed via a rescheduled step, and then the step carries the correct
// timing: copy the step's submit/start/end/state onto the job, making the job
// COMPLETED.  Steps whose state is not COMPLETED never patch anything.
//
// If a job has several completed steps the one with the latest end time wins;
// on equal end times the one appearing later in the input wins.  (The record
// order coming out of sacct does not define a total order over steps, so the
// tie-break is explicit here.)
//
// The result contains top-level jobs only, in input order: those whose final
// state is COMPLETED plus any whose id is in keepFailed regardless of state.
// The operation is idempotent - its output contains no steps and no patchable
// jobs, so running it again returns the same list.

func Reconcile(records []*JobRecord, keepFailed []string) []*JobRecord {
	var jobs []*JobRecord
	steps := make(map[string]*JobRecord)
	for _, r := range records {
		if !r.IsStep() {
			jobs = append(jobs, r)
			continue
		}
		if r.State != StateCompleted {
			continue
		}
		id := r.JobId()
		if prev, found := steps[id]; found && prev.End.After(r.End) {
			continue
		}
		steps[id] = r
	}

	keep := make(map[string]bool, len(keepFailed))
	for _, id := range keepFailed {
		keep[id] = true
	}

	result := make([]*JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if job.State != StateCompleted {
			if step, found := steps[job.Id]; found {
				job.Submit = step.Submit
				job.Start = step.Start
				job.End = step.End
				job.State = step.State
			}
		}
		if job.State == StateCompleted || keep[job.Id] {
			result = append(result, job)
		}
	}
	return result
}
