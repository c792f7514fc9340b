// Package oracle connects to Oracle databases, staging the bundled Instant
// Client first when the host has none installed.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/sqlunlocker/sqlunlocker/internal/libpath"
	"github.com/sqlunlocker/sqlunlocker/internal/oic"
)

// State tracks whether a usable native client has been established.
type State int

const (
	Unchecked State = iota
	Probing
	// RuntimePresent means an installed client was found; nothing was staged.
	RuntimePresent
	// RuntimeExtracted means the bundled client was staged by this Client.
	RuntimeExtracted
)

func (s State) String() string {
	switch s {
	case Probing:
		return "probing"
	case RuntimePresent:
		return "runtime-present"
	case RuntimeExtracted:
		return "runtime-extracted"
	default:
		return "unchecked"
	}
}

// Client holds connection parameters and owns the extracted client, if any.
// Call Close when done with it.
type Client struct {
	Host     string
	Port     int
	Service  string
	User     string
	Password string

	driver Driver
	bundle *oic.Bundle
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	version ClientVersion
	runtime *oic.Runtime
}

// Option configures a Client.
type Option func(*Client)

// WithDriver selects the connection protocol.
func WithDriver(d Driver) Option {
	return func(c *Client) { c.driver = d }
}

// WithBundle replaces the embedded client bundle.
func WithBundle(b *oic.Bundle) Option {
	return func(c *Client) { c.bundle = b }
}

// WithLogger sets the logger used for bootstrap and connection messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client. No I/O is performed and the parameters are not
// validated; bad values surface when connecting.
func New(host string, port int, service, user, password string, opts ...Option) *Client {
	c := &Client{
		Host:     host,
		Port:     port,
		Service:  service,
		User:     user,
		Password: password,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.driver == nil {
		c.driver = defaultDriver()
	}
	if c.bundle == nil {
		c.bundle = oic.Embedded()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// ConnectString returns "host:port/service" from the current parameters.
func (c *Client) ConnectString() string {
	return c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.Service
}

// EnsureRuntime makes sure the driver's native client can be loaded. If the
// probe fails, the bundled client is extracted to a temporary directory that
// is appended to the loader search path and kept until Close.
//
// Once a client has been found or staged, later calls do nothing.
func (c *Client) EnsureRuntime() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == RuntimePresent || c.state == RuntimeExtracted {
		return nil
	}

	c.state = Probing
	v, err := c.driver.ProbeClient()
	if err == nil {
		c.state = RuntimePresent
		c.version = v
		c.logger.Debug("native client available", "driver", c.driver.Name(), "version", v.String())
		return nil
	}
	c.logger.Info("native client not found, extracting bundled client", "driver", c.driver.Name(), "reason", err)

	rt, err := oic.Extract(c.bundle)
	if err != nil {
		c.state = Unchecked
		return fmt.Errorf("cannot stage bundled client: %w", err)
	}
	if skipped := rt.Skipped(); len(skipped) > 0 {
		c.logger.Debug("some bundled files were not extracted", "skipped", skipped)
	}

	if _, err := libpath.Append(rt.Dir()); err != nil {
		_ = rt.Remove()
		c.state = Unchecked
		return fmt.Errorf("cannot stage bundled client: %w", err)
	}

	c.runtime = rt
	c.state = RuntimeExtracted
	attrs := []any{"dir", rt.Dir(), "files", len(rt.Written()), "var", libpath.Var}
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		if digest, err := c.bundle.Digest(); err == nil {
			attrs = append(attrs, "digest", digest)
		}
	}
	c.logger.Info("extracted bundled client", attrs...)
	return nil
}

// Connect opens a session and begins a transaction. It never stages the
// client itself; call EnsureRuntime first.
func (c *Client) Connect(ctx context.Context) (*Conn, error) {
	cs := c.ConnectString()
	c.logger.Info("connecting", "to", cs, "driver", c.driver.Name())

	db, err := c.driver.Open(ctx, c.params(cs))
	if err != nil {
		return nil, &ConnectError{ConnectString: cs, Err: err}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()
		return nil, &ConnectError{ConnectString: cs, Err: err}
	}
	return &Conn{db: db, tx: tx}, nil
}

func (c *Client) params(cs string) Params {
	return Params{
		User:          c.User,
		Password:      c.Password,
		Host:          c.Host,
		Port:          c.Port,
		Service:       c.Service,
		ConnectString: cs,
		LibDir:        c.RuntimeDir(),
	}
}

// State reports the bootstrap state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ClientVersion returns the installed client found by EnsureRuntime. It is
// the zero value when the bundled client was staged instead.
func (c *Client) ClientVersion() ClientVersion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// RuntimeDir returns the extracted client directory, or "" if none is owned.
func (c *Client) RuntimeDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runtime == nil {
		return ""
	}
	return c.runtime.Dir()
}

// Close removes the extracted client from the search path and deletes it.
// The Client must not be used afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runtime == nil {
		return nil
	}
	_, pathErr := libpath.Remove(c.runtime.Dir())
	removeErr := c.runtime.Remove()
	c.runtime = nil
	return errors.Join(pathErr, removeErr)
}
