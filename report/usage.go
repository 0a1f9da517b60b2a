// Generate the node-usage report for a campaign: query the scheduler's
// accounting log, aggregate the jobs into a node-occupancy histogram, render
// the plot, and print the campaign summary (total node-hours and per-code
// elapsed hours, or per-code node-hours with -code-hours).

package report

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/lsst-dm/ldf-ops-tools/codes"
	"github.com/lsst-dm/ldf-ops-tools/plot"
	"github.com/lsst-dm/ldf-ops-tools/sacct"
	"github.com/lsst-dm/ldf-ops-tools/status"
	"github.com/lsst-dm/ldf-ops-tools/usage"
	"github.com/lsst-dm/ldf-ops-tools/util"
)

const defaultResolution = 800

func Usage(progname string, args []string) error {
	opts := util.NewFlagSet(progname, "usage")
	usersPtr := opts.String("users", "",
		"Comma-separated `list` of users to consider; all users if omitted")
	jobsPtr := opts.String("jobs", "",
		"Comma-separated `list` of jobs to consider; precludes -users")
	failedPtr := opts.String("failed", "",
		"Comma-separated `list` of failed job ids to include anyway; requires -jobs")
	titlePtr := opts.String("title", "", "Plot `title`; no title if omitted")
	namePtr := opts.String("name", "usage",
		"Base `name` of the .png file, without the extension")
	colorPtr := opts.Bool("color", false,
		"Color-code the plot by the pipeline code names")
	codeHoursPtr := opts.Bool("code-hours", false,
		"Report per-code node-hours instead of per-code elapsed hours")
	mappingPtr := opts.String("mapping", "",
		"JSON `file` mapping job-name prefixes to code names")
	resPtr := opts.Int("res", defaultResolution, "Histogram `resolution` (bucket count)")
	sacctPtr := opts.String("sacct", "", "`Path` to the sacct executable")
	inputPtr := opts.String("input", "",
		"For testing: read accounting rows from this `file` instead of running sacct")
	dataPtr := opts.String("data", "",
		"Also write the aggregated series to this JSON `file`, for usage-plot")
	stdOpts := util.AddStandardOptions(opts)
	if err := opts.Parse(args); err != nil {
		return err
	}
	if *usersPtr != "" && *jobsPtr != "" {
		return errors.New("-users and -jobs are mutually exclusive")
	}
	if *failedPtr != "" && *jobsPtr == "" {
		return errors.New("-failed requires -jobs")
	}
	if stdOpts.Verbose {
		status.Default().LowerLevelTo(status.LogLevelInfo)
	}
	util.ApplyDefault(sacctPtr, util.UsageSacct)
	util.ApplyDefault(mappingPtr, util.UsageMapping)

	mapping := codes.DefaultMapping()
	if *mappingPtr != "" {
		var err error
		mapping, err = codes.ReadMapping(*mappingPtr)
		if err != nil {
			return err
		}
	}

	gatherOpts := &sacct.GatherOptions{
		Users:  *usersPtr,
		Jobs:   *jobsPtr,
		Failed: *failedPtr,
		Sacct:  *sacctPtr,
	}
	var records []*sacct.JobRecord
	var err error
	if *inputPtr != "" {
		input, err := os.Open(*inputPtr)
		if err != nil {
			return err
		}
		defer input.Close()
		records, err = sacct.ParseRecords(input, ',')
		if err != nil {
			return err
		}
	} else {
		records, err = sacct.Gather(gatherOpts)
		if err != nil {
			return err
		}
	}
	status.Default().Infof("%d raw accounting records", len(records))

	records = sacct.Reconcile(records, gatherOpts.FailedIds())
	status.Default().Infof("%d jobs after reconciliation", len(records))

	hist, err := usage.BuildHistogram(records, mapping, *resPtr)
	if err != nil {
		return err
	}
	series := hist.Series()

	var spans map[string][]usage.Span
	if *colorPtr {
		spans = usage.CodeSpans(hist.Codes)
	}
	if err := plot.Render(*namePtr+".png", *titlePtr, series, spans, plot.DefaultStyle()); err != nil {
		return err
	}

	if *dataPtr != "" {
		if err := usage.WriteSeries(*dataPtr, series); err != nil {
			return err
		}
	}

	var perCode map[string]float64
	if *codeHoursPtr {
		perCode, err = usage.CodeHours(records, mapping)
	} else {
		perCode, err = usage.ElapsedHours(records, mapping)
	}
	if err != nil {
		return err
	}
	printSummary(usage.NodeHours(records), perCode)
	return nil
}

func printSummary(nodeHours float64, elapsed map[string]float64) {
	fmt.Printf("%.2f\n", nodeHours)
	keys := make([]string, 0, len(elapsed))
	for code := range elapsed {
		keys = append(keys, code)
	}
	sort.Strings(keys)
	for _, code := range keys {
		fmt.Printf("%s: %.2f\n", code, elapsed[code])
	}
}
