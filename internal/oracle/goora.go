package oracle

import (
	"context"
	"database/sql"

	go_ora "github.com/sijms/go-ora/v2"
)

// goOraDriver speaks the Oracle wire protocol in pure Go and needs no
// native client.
type goOraDriver struct{}

func init() {
	register(goOraDriver{})
}

func (goOraDriver) Name() string { return "go-ora" }

func (goOraDriver) ProbeClient() (ClientVersion, error) {
	return ClientVersion{Library: "built-in"}, nil
}

func (goOraDriver) Open(ctx context.Context, p Params) (*sql.DB, error) {
	return openAndPing(ctx, "oracle", go_ora.BuildUrl(p.Host, p.Port, p.Service, p.User, p.Password, nil))
}
