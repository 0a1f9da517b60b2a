// Connection to the campaign database.
//
// Credentials come from a DB services file: an ini file whose sections each
// describe one database service by name.  An operator typically keeps one
// such file with sections for the production and test databases and picks a
// section per run.

package dbconn

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/jackc/pgx/v5"

	"github.com/lsst-dm/ldf-ops-tools/ini"
)

const defaultServicesFile = ".ldf_services.ini"

type Service struct {
	User   string
	Passwd string
	Server string
	Port   string
	Name   string
}

// Read the named section from the services file.  With filename empty the
// file is $HOME/.ldf_services.ini.  A missing file, section, or key is a hard
// error; there is nothing sensible to fall back to.

func ReadService(filename, section string) (*Service, error) {
	if filename == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return nil, fmt.Errorf("No services file given and no $HOME")
		}
		filename = path.Join(path.Clean(home), defaultServicesFile)
	}
	if section == "" {
		return nil, fmt.Errorf("Required argument: -section")
	}

	input, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed to open services file\n%w", err)
	}
	defer input.Close()
	file, err := ini.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse services file %s\n%w", filename, err)
	}
	s := file.Lookup(section)
	if s == nil {
		return nil, fmt.Errorf("No section %s in services file %s", section, filename)
	}

	svc := &Service{
		User:   s.Vars["user"],
		Passwd: s.Vars["passwd"],
		Server: s.Vars["server"],
		Port:   s.Vars["port"],
		Name:   s.Vars["name"],
	}
	if svc.User == "" || svc.Passwd == "" || svc.Server == "" || svc.Name == "" {
		return nil, fmt.Errorf(
			"Section %s must define user, passwd, server, and name", section)
	}
	if svc.Port == "" {
		svc.Port = "5432"
	}
	return svc, nil
}

func (svc *Service) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(svc.User, svc.Passwd),
		Host:   svc.Server + ":" + svc.Port,
		Path:   "/" + svc.Name,
	}
	return u.String()
}

func Connect(ctx context.Context, svc *Service) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, svc.URL())
	if err != nil {
		return nil, fmt.Errorf("Unable to connect to database %s at %s\n%w",
			svc.Name, svc.Server, err)
	}
	return conn, nil
}
