// Parse very simple ini files with operator-chosen section names, such as DB
// services files.
//
// The file format is line-oriented.  Comment lines and blank lines are
// stripped first:
//   COMMENT = /^\s*#.*$/
//   BLANK = /^\s*$/
//
// The remaining file must conform to this grammar:
//   file ::= section*
//   section ::= section-header section-statement*
//   section-header ::= /^\[IDENT\]\s*$/
//   section-statement ::= /^\s*IDENT\s*=VALUE$/
//
// where
//   IDENT = /[-a-zA-Z_$][-a-zA-Z0-9_$]*/
//   VALUE = .*

package ini

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

type File []Section

type Section struct {
	Name string
	Vars map[string]string
}

// The named section, or nil if there is none.

func (f File) Lookup(name string) *Section {
	for i := range f {
		if f[i].Name == name {
			return &f[i]
		}
	}
	return nil
}

var (
	commentOrBlankLine = regexp.MustCompile(`^\s*(#.*)?$`)
	identPattern       = `[-a-zA-Z_$][-a-zA-Z0-9_$]*`
	headerLine         = regexp.MustCompile(`^\[(` + identPattern + `)\]\s*$`)
	sectionStmtLine    = regexp.MustCompile(`^\s*(` + identPattern + `)\s*=(.*)$`)
)

// Parse errors out on anything malformed and on duplicated section headers or
// variable names; the error message carries the line number and text.

func Parse(input io.Reader) (File, error) {
	var file File
	lineNo := 0
	scanner := bufio.NewScanner(input)
	seen := make(map[string]bool)
	for scanner.Scan() {
		l := scanner.Text()
		lineNo++
		if commentOrBlankLine.MatchString(l) {
			continue
		}
		if m := headerLine.FindStringSubmatch(l); m != nil {
			name := m[1]
			if seen[name] {
				return nil, fmt.Errorf("Line %d: Duplicated section name %s.\n%s", lineNo, name, l)
			}
			seen[name] = true
			file = append(file, Section{Name: name, Vars: make(map[string]string)})
			continue
		}
		if len(file) == 0 {
			return nil, fmt.Errorf("Line %d: Missing section header\n%s", lineNo, l)
		}
		if m := sectionStmtLine.FindStringSubmatch(l); m != nil {
			name := m[1]
			value := m[2]
			current := &file[len(file)-1]
			if _, found := current.Vars[name]; found {
				return nil, fmt.Errorf("Line %d: Duplicated variable name %s.\n%s", lineNo, name, l)
			}
			current.Vars[name] = value
			continue
		}
		return nil, fmt.Errorf("Line %d: Malformed content.\n%s", lineNo, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return file, nil
}
