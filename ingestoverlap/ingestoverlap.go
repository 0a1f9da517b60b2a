// Ingest image/patch overlap rows into the campaign database.
//
// The overlap data are produced per campaign run as either an SQLite file
// (table calexp) or a delimited text file with a header line.  Rows are
// normalized - the patch separator "," becomes "_" - and inserted into the
// ccd_overlap_patch table together with the campaign version and skymap
// filename, in a single transaction.  A verification count for the version is
// printed at the end.

package ingestoverlap

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lsst-dm/ldf-ops-tools/dbconn"
	"github.com/lsst-dm/ldf-ops-tools/status"
	"github.com/lsst-dm/ldf-ops-tools/util"
)

const (
	overlapTable = "ccd_overlap_patch"

	oldPatchSep = ","
	newPatchSep = "_"
)

type overlapRow struct {
	Tract int
	Patch string
	Visit int
	Ccd   int
}

func IngestOverlap(progname string, args []string) error {
	opts := util.NewFlagSet(progname, "ingest-overlap")
	servicesPtr := opts.String("services", "", "DB services `file`; $HOME/.ldf_services.ini if omitted")
	sectionPtr := opts.String("section", "", "Section `name` in the services file (required)")
	versionPtr := opts.String("version", "", "Campaign `version` tag for the rows (required)")
	skymapPtr := opts.String("skymap", "", "Skymap `filename` for the rows (required)")
	sqlitePtr := opts.String("sqlite3", "", "Read calexp rows from this SQLite `file`")
	csvPtr := opts.String("csv", "", "Read rows from this delimited text `file`")
	delimPtr := opts.String("delim", ";", "Field `delimiter` for -csv input")
	stdOpts := util.AddStandardOptions(opts)
	if err := opts.Parse(args); err != nil {
		return err
	}
	if stdOpts.Verbose {
		status.Default().LowerLevelTo(status.LogLevelInfo)
	}
	util.ApplyDefault(servicesPtr, util.DatabaseServices)
	util.ApplyDefault(sectionPtr, util.DatabaseSection)
	if *versionPtr == "" || *skymapPtr == "" {
		return errors.New("Required arguments: -version, -skymap")
	}
	if (*sqlitePtr == "") == (*csvPtr == "") {
		return errors.New("Exactly one of -sqlite3 and -csv is required")
	}
	if *delimPtr == "" {
		return errors.New("-delim requires a value")
	}

	var rows []overlapRow
	var err error
	if *sqlitePtr != "" {
		rows, err = readSqliteRows(*sqlitePtr)
	} else {
		rows, err = readCsvRows(*csvPtr, *delimPtr)
	}
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
		"INSERT INTO %s (tract, patch, visit, ccd, version, skymap_filename) "+
			"VALUES ($1, $2, $3, $4, $5, $6)", overlapTable)
	for _, row := range rows {
		_, err := tx.Exec(ctx, insert,
			row.Tract, row.Patch, row.Visit, row.Ccd, *versionPtr, *skymapPtr)
		if err != nil {
			return fmt.Errorf("Failed to insert overlap row %+v\n%w", row, err)
		}
	}

	// Verification query within the transaction, before anything is visible.
	var count int
	err = tx.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s WHERE version = $1", overlapTable),
		*versionPtr).Scan(&count)
	if err != nil {
		return fmt.Errorf("Failed to verify ingest\n%w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("Failed to commit\n%w", err)
	}
	fmt.Printf("%d rows ingested, %d rows in %s with version = %s\n",
		len(rows), count, overlapTable, *versionPtr)
	return nil
}

// Read the calexp table of an overlap SQLite file.  Rows whose exist column
// is zero describe calexps that were never produced; they are skipped with a
// log line, not ingested.

func readSqliteRows(filename string) ([]overlapRow, error) {
	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("Failed to open %s\n%w", filename, err)
	}
	defer db.Close()

	sqlRows, err := db.Query("SELECT tract, patch, visit, ccd, exist FROM calexp")
	if err != nil {
		return nil, fmt.Errorf("Failed to read calexp table from %s\n%w", filename, err)
	}
	defer sqlRows.Close()

	var rows []overlapRow
	skipped := 0
	for sqlRows.Next() {
		var row overlapRow
		var exist int
		if err := sqlRows.Scan(&row.Tract, &row.Patch, &row.Visit, &row.Ccd, &exist); err != nil {
			return nil, fmt.Errorf("Malformed record in calexp table\n%w", err)
		}
		if exist == 0 {
			skipped++
			status.Default().Infof("Skipping %d %s %d %d", row.Tract, row.Patch, row.Visit, row.Ccd)
			continue
		}
		row.Patch = strings.ReplaceAll(row.Patch, oldPatchSep, newPatchSep)
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, err
	}
	status.Default().Infof("%d rows in calexp table with exist = 1, %d skipped", len(rows), skipped)
	return rows, nil
}

// Read overlap rows from delimited text.  The first non-comment line names
// the columns; "#" starts a comment anywhere on a line.  Any missing or
// unparsable field is a hard error.

func readCsvRows(filename string, delim string) ([]overlapRow, error) {
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	var headers map[string]int
	var rows []overlapRow
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		if ix := strings.IndexByte(line, '#'); ix != -1 {
			line = line[:ix]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, delim)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if headers == nil {
			headers = make(map[string]int)
			for i, h := range fields {
				headers[h] = i
			}
			for _, h := range []string{"tract", "patch", "visit", "ccd"} {
				if _, found := headers[h]; !found {
					return nil, fmt.Errorf("Missing column %s in %s", h, filename)
				}
			}
			continue
		}
		var row overlapRow
		row.Tract, err = intField(fields, headers, "tract")
		if err == nil {
			row.Visit, err = intField(fields, headers, "visit")
		}
		if err == nil {
			row.Ccd, err = intField(fields, headers, "ccd")
		}
		if err == nil && headers["patch"] >= len(fields) {
			err = fmt.Errorf("Missing field patch")
		}
		if err != nil {
			return nil, fmt.Errorf("Malformed record %q in %s\n%w", line, filename, err)
		}
		row.Patch = strings.ReplaceAll(fields[headers["patch"]], oldPatchSep, newPatchSep)
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if headers == nil {
		return nil, fmt.Errorf("No header line in %s", filename)
	}
	status.Default().Infof("%d lines from csv", len(rows))
	return rows, nil
}

func intField(fields []string, headers map[string]int, name string) (int, error) {
	ix := headers[name]
	if ix >= len(fields) {
		return 0, fmt.Errorf("Missing field %s", name)
	}
	n, err := strconv.Atoi(fields[ix])
	if err != nil {
		return 0, fmt.Errorf("Bad %s value %q", name, fields[ix])
	}
	return n, nil
}
