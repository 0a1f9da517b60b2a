// Ingest visit/ccd tag pairs into the campaign database.
//
// The input file holds one "visit ccd" pair per line; each pair is inserted
// into the visit_tag table together with the camera symbol and the tag, in a
// single transaction.  The tag must already exist in the valid-tag table;
// constraint violations surface as database errors.

package ingestvisits

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lsst-dm/ldf-ops-tools/dbconn"
	"github.com/lsst-dm/ldf-ops-tools/status"
	"github.com/lsst-dm/ldf-ops-tools/util"
)

const visitTagTable = "visit_tag"

type visitCcd struct {
	Visit int
	Ccd   int
}

func IngestVisitTag(progname string, args []string) error {
	opts := util.NewFlagSet(progname, "ingest-visit-tag")
	servicesPtr := opts.String("services", "", "DB services `file`; $HOME/.ldf_services.ini if omitted")
	sectionPtr := opts.String("section", "", "Section `name` in the services file (required)")
	camsymPtr := opts.String("camsym", "",
		"Camera `symbol` that makes visit numbers unique across cameras (required)")
	tagPtr := opts.String("tag", "",
		"`Tag` to attach; must already exist in the valid-tag table (required)")
	stdOpts := util.AddStandardOptions(opts)
	if err := opts.Parse(args); err != nil {
		return err
	}
	if stdOpts.Verbose {
		status.Default().LowerLevelTo(status.LogLevelInfo)
	}
	util.ApplyDefault(servicesPtr, util.DatabaseServices)
	util.ApplyDefault(sectionPtr, util.DatabaseSection)
	if *camsymPtr == "" || *tagPtr == "" {
		return errors.New("Required arguments: -camsym, -tag")
	}
	if opts.NArg() != 1 {
		return errors.New("Exactly one input filename is required")
	}
	filename, err := util.RequireCleanPath(opts.Arg(0), "filename")
	if err != nil {
		return err
	}

	pairs, err := readPairs(filename)
	if err != nil {
		return err
	}

	svc, err := dbconn.ReadService(*servicesPtr, *sectionPtr)
	if err != nil {
		return err
	}
	ctx := context.Background()
	conn, err := dbconn.Connect(ctx, svc)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction\n%w", err)
	}
	defer tx.Rollback(ctx)

	insert := fmt.Sprintf(
		"INSERT INTO %s (camsym, visit, ccd, tag) VALUES ($1, $2, $3, $4)", visitTagTable)
	for _, pair := range pairs {
		if _, err := tx.Exec(ctx, insert, *camsymPtr, pair.Visit, pair.Ccd, *tagPtr); err != nil {
			return fmt.Errorf("Failed to insert visit %d ccd %d\n%w", pair.Visit, pair.Ccd, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("Failed to commit\n%w", err)
	}

	fmt.Printf("Ingested %d rows into %s for tag=%s\n", len(pairs), visitTagTable, *tagPtr)
	return nil
}

// Read "visit ccd" pairs, one per line.  A line with the wrong field count or
// an unparsable number is a hard error naming the line.

func readPairs(filename string) ([]visitCcd, error) {
	status.Default().Infof("Reading visit + ccd values from %s", filename)
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	var pairs []visitCcd
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("Malformed record %q in %s", line, filename)
		}
		visit, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("Bad visit value %q in %s", fields[0], filename)
		}
		ccd, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("Bad ccd value %q in %s", fields[1], filename)
		}
		pairs = append(pairs, visitCcd{Visit: visit, Ccd: ccd})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
