//go:build cgo

package oracle

import (
	"context"
	"database/sql"

	"github.com/godror/godror"
)

// godrorDriver talks to Oracle through the Instant Client libraries.
type godrorDriver struct{}

func init() {
	register(godrorDriver{})
}

func (godrorDriver) Name() string { return "godror" }

func (godrorDriver) ProbeClient() (ClientVersion, error) {
	return ProbeNative()
}

// Open hands the parameters to godror as a struct. A logfmt string would
// replace invalid UTF-8 in the password with U+FFFD.
func (godrorDriver) Open(ctx context.Context, p Params) (*sql.DB, error) {
	return ping(ctx, "godror", sql.OpenDB(godror.NewConnector(godrorParams(p))))
}

func godrorParams(p Params) godror.ConnectionParams {
	var P godror.ConnectionParams
	P.Username = p.User
	P.Password = godror.NewPassword(p.Password)
	P.ConnectString = p.ConnectString
	P.LibDir = p.LibDir
	return P
}
