package ini

import (
	"strings"
	"testing"
)

func TestIni(t *testing.T) {
	x, err := Parse(strings.NewReader(`
# This is a test

[db-prod]
user=ops
 passwd =secret and some more
#hi
[db-test]
[empty]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(x) != 3 {
		t.Fatalf("Expected length 3: %v", x)
	}
	if x[0].Name != "db-prod" || x[1].Name != "db-test" || x[2].Name != "empty" {
		t.Fatalf("Names are wrong: %v", x)
	}

	m := x[0].Vars
	if len(m) != 2 {
		t.Fatalf("db-prod is wrong: %v", x)
	}
	if m["user"] != "ops" {
		t.Fatalf("user is wrong: %v", x)
	}
	if m["passwd"] != "secret and some more" {
		t.Fatalf("passwd is wrong: %v", x)
	}
	if len(x[1].Vars) > 0 {
		t.Fatalf("db-test is wrong: %v", x)
	}

	if s := x.Lookup("db-test"); s == nil || s.Name != "db-test" {
		t.Fatalf("Lookup failed: %v", s)
	}
	if s := x.Lookup("missing"); s != nil {
		t.Fatalf("Lookup of missing section should be nil: %v", s)
	}
}

func TestIniErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("x=10\n")); err == nil {
		t.Fatal("Statement before section header should fail")
	}
	if _, err := Parse(strings.NewReader("[a]\n[a]\n")); err == nil {
		t.Fatal("Duplicated section should fail")
	}
	if _, err := Parse(strings.NewReader("[a]\nx=1\nx=2\n")); err == nil {
		t.Fatal("Duplicated variable should fail")
	}
	if _, err := Parse(strings.NewReader("[a]\n???\n")); err == nil {
		t.Fatal("Malformed line should fail")
	}
}
