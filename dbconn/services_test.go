package dbconn

import (
	"os"
	"path"
	"strings"
	"testing"
)

func writeServices(t *testing.T, content string) string {
	t.Helper()
	fn := path.Join(t.TempDir(), "services.ini")
	if err := os.WriteFile(fn, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return fn
}

const services = `
# Campaign databases
[db-prod]
user=ops
passwd=s3cret/with:odd@chars
server=db.example.org
port=5433
name=campaign

[db-test]
user=ops
passwd=hunter2
server=localhost
name=scratch
`

func TestReadService(t *testing.T) {
	fn := writeServices(t, services)

	svc, err := ReadService(fn, "db-prod")
	if err != nil {
		t.Fatal(err)
	}
	if svc.User != "ops" || svc.Server != "db.example.org" || svc.Port != "5433" ||
		svc.Name != "campaign" {
		t.Fatalf("Bad service: %+v", svc)
	}

	// Port defaults when absent
	svc, err = ReadService(fn, "db-test")
	if err != nil {
		t.Fatal(err)
	}
	if svc.Port != "5432" {
		t.Fatalf("Expected default port, got %s", svc.Port)
	}
}

func TestReadServiceErrors(t *testing.T) {
	fn := writeServices(t, services)

	if _, err := ReadService(fn, ""); err == nil {
		t.Fatal("Missing section name should fail")
	}
	if _, err := ReadService(fn, "db-prodd"); err == nil {
		t.Fatal("Missing section should fail")
	}
	if _, err := ReadService(path.Join(t.TempDir(), "nothere.ini"), "db-prod"); err == nil {
		t.Fatal("Missing file should fail")
	}

	incomplete := writeServices(t, "[db]\nuser=ops\n")
	if _, err := ReadService(incomplete, "db"); err == nil {
		t.Fatal("Incomplete section should fail")
	}
}

func TestServiceURL(t *testing.T) {
	svc := &Service{
		User: "ops", Passwd: "s3cret/with:odd@chars",
		Server: "db.example.org", Port: "5433", Name: "campaign",
	}
	u := svc.URL()
	if !strings.HasPrefix(u, "postgres://") {
		t.Fatalf("Bad URL %s", u)
	}
	if !strings.HasSuffix(u, "@db.example.org:5433/campaign") {
		t.Fatalf("Bad URL %s", u)
	}
	// The password must be escaped, not raw.
	if strings.Contains(u, "s3cret/with:odd@chars") {
		t.Fatalf("Unescaped password in URL %s", u)
	}
}
