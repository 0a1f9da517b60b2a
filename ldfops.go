// Operational tools for the LSST Data Facility pipeline campaigns.
//
// Run `ldfops help` for help.

package main

import (
	"fmt"
	"os"

	"github.com/lsst-dm/ldf-ops-tools/ingestoverlap"
	"github.com/lsst-dm/ldf-ops-tools/ingestvisits"
	"github.com/lsst-dm/ldf-ops-tools/report"
)

func main() {
	if len(os.Args) < 2 {
		toplevelUsage(1)
	}
	var err error
	switch os.Args[1] {
	case "help":
		toplevelUsage(0)

	case "usage":
		err = report.Usage(os.Args[0], os.Args[2:])

	case "usage-plot":
		err = report.UsagePlot(os.Args[0], os.Args[2:])

	case "ingest-overlap":
		err = ingestoverlap.IngestOverlap(os.Args[0], os.Args[2:])

	case "ingest-visit-tag":
		err = ingestvisits.IngestVisitTag(os.Args[0], os.Args[2:])

	default:
		toplevelUsage(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n\n", err)
		toplevelUsage(1)
	}
}

func toplevelUsage(code int) {
	fmt.Fprintf(
		os.Stderr,
		`Usage of %s:
  %s <verb> <option> ...

where <verb> is one of

  help
    Print help
  usage
    Query the scheduler's accounting log, plot the campaign's node usage,
    and print the node-hour summary
  usage-plot
    Re-plot a usage series saved with usage -data
  ingest-overlap
    Ingest image/patch overlap rows into the campaign database
  ingest-visit-tag
    Ingest visit/ccd tag pairs into the campaign database

All verbs accept -h to print verb-specific help.
`,
		os.Args[0],
		os.Args[0])
	os.Exit(code)
}
