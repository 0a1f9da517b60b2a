// Re-plot a saved usage series without talking to the scheduler.  The summary
// figures here are estimated from the bucketed series, so they agree with the
// usage verb's exact figures only up to bucket granularity.

package report

import (
	"github.com/lsst-dm/ldf-ops-tools/codes"
	"github.com/lsst-dm/ldf-ops-tools/plot"
	"github.com/lsst-dm/ldf-ops-tools/usage"
	"github.com/lsst-dm/ldf-ops-tools/util"
)

func UsagePlot(progname string, args []string) error {
	opts := util.NewFlagSet(progname, "usage-plot")
	dataPtr := opts.String("data", "", "Usage series JSON `file` written by usage -data (required)")
	titlePtr := opts.String("title", "", "Plot `title`; no title if omitted")
	namePtr := opts.String("name", "usage",
		"Base `name` of the .png file, without the extension")
	colorPtr := opts.Bool("color", false,
		"Color-code the plot by the pipeline code names")
	mappingPtr := opts.String("mapping", "",
		"JSON mapping `file`; codes with no jobs then appear in the summary with 0")
	if err := opts.Parse(args); err != nil {
		return err
	}
	util.ApplyDefault(mappingPtr, util.UsageMapping)
	dataFile, err := util.RequireCleanPath(*dataPtr, "-data")
	if err != nil {
		return err
	}

	series, err := usage.ReadSeries(dataFile)
	if err != nil {
		return err
	}

	var spans map[string][]usage.Span
	if *colorPtr {
		spans = usage.CodeSpans(series.Codes)
	}
	if err := plot.Render(*namePtr+".png", *titlePtr, series, spans, plot.DefaultStyle()); err != nil {
		return err
	}

	elapsed := series.ElapsedHours()
	if *mappingPtr != "" {
		// The series already stores classified codes; the mapping only
		// contributes the full code list, so codes with no jobs are reported
		// as zero rather than omitted.
		mapping, err := codes.ReadMapping(*mappingPtr)
		if err != nil {
			return err
		}
		for _, code := range mapping.Codes() {
			if _, found := elapsed[code]; !found {
				elapsed[code] = 0
			}
		}
	}
	printSummary(series.NodeHours(), elapsed)
	return nil
}
