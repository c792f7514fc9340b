package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultDriver is the driver used when none is configured.
const DefaultDriver = "godror"

// ErrUnknownDriver is returned by LookupDriver for unregistered names.
var ErrUnknownDriver = errors.New("unknown driver")

// Driver is the connection protocol used to reach the database.
type Driver interface {
	// Name identifies the driver in configuration and logs.
	Name() string
	// ProbeClient reports whether the native client the driver relies on can
	// be resolved right now. It has no side effects.
	ProbeClient() (ClientVersion, error)
	// Open connects to the database and verifies the connection.
	Open(ctx context.Context, p Params) (*sql.DB, error)
}

// Params are the connection parameters handed to a Driver.
type Params struct {
	User          string
	Password      string
	Host          string
	Port          int
	Service       string
	ConnectString string
	// LibDir is the directory of an extracted client, empty when the
	// installed client is used.
	LibDir string
}

// ClientVersion describes the native client found by a probe.
type ClientVersion struct {
	Major   int
	Minor   int
	Library string
}

func (v ClientVersion) String() string {
	if v.Major == 0 {
		return "unknown (" + v.Library + ")"
	}
	return fmt.Sprintf("%d.%d (%s)", v.Major, v.Minor, v.Library)
}

// ConnectError reports a failed connection attempt. Err holds the driver's
// own diagnostic, which tells the operator how to fix a missing client.
type ConnectError struct {
	ConnectString string
	Err           error
}

func (e *ConnectError) Error() string {
	return "cannot connect to " + e.ConnectString
}

func (e *ConnectError) Unwrap() error { return e.Err }

var drivers = map[string]Driver{}

func register(d Driver) {
	drivers[d.Name()] = d
}

// LookupDriver returns the registered driver called name.
func LookupDriver(name string) (Driver, error) {
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownDriver, name, strings.Join(Drivers(), ", "))
	}
	return d, nil
}

// Drivers lists the names of the drivers compiled into this binary.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultDriver() Driver {
	if d, ok := drivers[DefaultDriver]; ok {
		return d
	}
	return goOraDriver{}
}

func openAndPing(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	return ping(ctx, driverName, db)
}

// ping checks db and closes it if the server cannot be reached.
func ping(ctx context.Context, driverName string, db *sql.DB) (*sql.DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return db, nil
}
