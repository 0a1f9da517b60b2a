// Per-user defaults for ldfops, read from $HOME/.ldfops if it exists.  The
// file supplies values for options the operator does not want to repeat on
// every run; a value given on the command line always wins.
//
// Recognized content:
//
//   [database]
//   services=/path/to/services/file
//   section=db-section-name
//
//   [usage]
//   sacct=/path/to/sacct
//   mapping=/path/to/mapping.json

package util

import (
	"errors"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"

	"github.com/lsst-dm/ldf-ops-tools/status"
)

// MT: Constant after initialization
var (
	p     = ini.NewParser()
	store *ini.Store

	database         = p.AddSection("database")
	DatabaseServices = database.AddString("services")
	DatabaseSection  = database.AddString("section")

	usageSection = p.AddSection("usage")
	UsageSacct   = usageSection.AddString("sacct")
	UsageMapping = usageSection.AddString("mapping")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".ldfops")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			status.Default().Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		status.Default().Errorf("Error in trying to parse %s: %s", fn, err.Error())
		return
	}
}

// Fill an unset option value from the defaults file, expanding environment
// variables in the stored value.

func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || store == nil || !f.Present(store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}
