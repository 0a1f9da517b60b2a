// Classification of Slurm job names into pipeline code names.
//
// Operators name batch jobs with a fixed-length prefix identifying the
// pipeline code that ran ("co..." for coadd jobs, say); the mapping from
// prefix to code name is campaign configuration.  The mapping is closed: a
// name matching no prefix is "unknown", and a name matching more than one
// prefix is a configuration defect that is never resolved silently.

package codes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lsst-dm/ldf-ops-tools/util"
)

const Unknown = "unknown"

// The campaign mapping in use when no mapping file is given.

var defaultMapping = map[string]string{
	"Wi": "singleFrame",
	"Co": "singleFrame",
	"mo": "mosaic",
	"co": "coadd",
	"mt": "multiband",
	"un": Unknown,
}

type Mapping struct {
	// Nominal prefix length: the length of the shortest key.  Campaign
	// mapping files use a uniform key length, but that is not enforced, and
	// classification always matches against every key.
	KeyLen int

	byPrefix map[string]string
}

func DefaultMapping() *Mapping {
	return &Mapping{KeyLen: 2, byPrefix: defaultMapping}
}

func NewMapping(byPrefix map[string]string) (*Mapping, error) {
	if len(byPrefix) == 0 {
		return nil, fmt.Errorf("Empty code mapping")
	}
	// The map is copied: the fallback insertion below must not scribble on
	// the caller's data.
	m := &Mapping{byPrefix: make(map[string]string, len(byPrefix)+1)}
	for key, code := range byPrefix {
		if key == "" {
			return nil, fmt.Errorf("Empty mapping key")
		}
		if m.KeyLen == 0 || len(key) < m.KeyLen {
			m.KeyLen = len(key)
		}
		m.byPrefix[key] = code
	}
	// Jobs named "un..." classify as unknown explicitly, a campaign naming
	// convention.
	if _, found := m.byPrefix["un"]; !found && m.KeyLen == 2 {
		m.byPrefix["un"] = Unknown
	}
	return m, nil
}

// Read a mapping from a JSON file of the form {"co": "coadd", ...}.  Any "un"
// key is dropped and replaced by the implicit unknown fallback, so mapping
// files cannot redefine what "un..." jobs mean.

func ReadMapping(filename string) (*Mapping, error) {
	var byPrefix map[string]string
	if err := util.ReadJSONFile(filename, &byPrefix); err != nil {
		return nil, err
	}
	delete(byPrefix, "un")
	return NewMapping(byPrefix)
}

// The code name for a job name: prefix match against every key.  Zero matches
// is "unknown"; several matches is an error naming the conflicting keys.

func (m *Mapping) MapName(name string) (string, error) {
	var matches []string
	for key := range m.byPrefix {
		if strings.HasPrefix(name, key) {
			matches = append(matches, key)
		}
	}
	switch len(matches) {
	case 0:
		return Unknown, nil
	case 1:
		return m.byPrefix[matches[0]], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf(
			"Ambiguous mapping: keys %q all match job name %q", matches, name)
	}
}

// The code name for a bare prefix (exact key lookup), for call paths that
// have already truncated the name to KeyLen.

func (m *Mapping) MapPrefix(prefix string) string {
	if code, found := m.byPrefix[prefix]; found {
		return code
	}
	return Unknown
}

// All distinct code names, "unknown" included.

func (m *Mapping) Codes() []string {
	seen := make(map[string]bool)
	var all []string
	for _, code := range m.byPrefix {
		if !seen[code] {
			seen[code] = true
			all = append(all, code)
		}
	}
	if !seen[Unknown] {
		all = append(all, Unknown)
	}
	sort.Strings(all)
	return all
}
