package connector

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/spigotdb/spigot/internal/model"
)

// ConnectionConfig holds database connection parameters. User and Password
// are optional; when set they are merged into the DSN according to the
// driver's DSN format before connecting.
type ConnectionConfig struct {
	Driver          string
	DSN             string
	User            string
	Password        string
	SchemaName      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PrivateKeyPath  string // PEM-encoded private key file (Snowflake key-pair auth)
}

// Connector is the metadata surface every database dialect must implement.
// A connected Connector holds a live resource; callers release it with
// Disconnect on every exit path.
type Connector interface {
	// Connection management
	Connect(cfg ConnectionConfig) error
	Disconnect() error
	Ping(ctx context.Context) error
	DB() *sqlx.DB

	// Schema metadata. All three preserve catalog order and close their
	// cursors on every path. ListTables returns base tables only; views
	// and system tables are excluded even when the catalog reports them.
	ListTables(ctx context.Context) ([]string, error)
	ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error)
	ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error)

	// Metadata
	DriverName() string
	QuoteIdentifier(name string) string
}

// ConnectionError reports a driver resolution or connection handshake
// failure.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect (driver %s): %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// WithCredentials merges a separately supplied user and password into the
// DSN using the driver's format. DSNs that already carry credentials are
// returned unchanged, as are drivers without a credential slot (sqlite).
func WithCredentials(driver, dsn, user, password string) string {
	if user == "" {
		return dsn
	}
	switch driver {
	case "postgres", "mssql":
		return urlDSNWithCredentials(dsn, user, password)
	case "mysql":
		if cfg, err := mysqldriver.ParseDSN(sanitizeMySQLDSN(dsn)); err == nil {
			if cfg.User != "" {
				return dsn
			}
			cfg.User = user
			cfg.Passwd = password
			return cfg.FormatDSN()
		}
		return dsn
	case "snowflake":
		// user:pass@account/db/schema — prepend only when absent.
		if i := strings.Index(dsn, "@"); i > 0 {
			return dsn
		}
		return user + ":" + password + "@" + strings.TrimPrefix(dsn, "@")
	default:
		return dsn
	}
}

func urlDSNWithCredentials(dsn, user, password string) string {
	schemeEnd := strings.Index(dsn, "://")
	if schemeEnd < 0 {
		return dsn
	}
	rest := dsn[schemeEnd+3:]
	if strings.LastIndex(rest, "@") >= 0 {
		return dsn // credentials already present
	}
	return dsn[:schemeEnd+3] + url.PathEscape(user) + ":" + url.PathEscape(password) + "@" + rest
}

// SanitizeDSN ensures that URL-style DSNs (postgres://, sqlserver://) have
// their userinfo (especially the password) properly percent-encoded. Raw
// passwords containing @, #, %, or other URL-special characters cause the
// Go URL parser to mis-split the authority component.
//
// MySQL DSNs are normalized to use the tcp() wrapper required by
// go-sql-driver. Snowflake uses its own non-URL DSN format and is returned
// unchanged.
func SanitizeDSN(driver, dsn string) string {
	switch driver {
	case "postgres", "mssql":
		return sanitizeURLDSN(dsn)
	case "mysql":
		return sanitizeMySQLDSN(dsn)
	default:
		return dsn
	}
}

// mysqlBareHostPort matches "user:pass@host:port/db" (no tcp() wrapper, no ()
// wrapper). We look for the last "@" followed by what looks like host:port/db.
var mysqlBareHostPort = regexp.MustCompile(`^(.+)@([^(@]+:\d+)(/.*)?$`)

// sanitizeMySQLDSN normalizes a MySQL DSN so that go-sql-driver/mysql can
// parse it correctly. The driver requires the format:
//
//	user:pass@tcp(host:port)/dbname
//
// Common mistakes from users:
//
//	user:pass@host:port/db          → missing tcp() wrapper
//	user:pass@(host:port)/db        → missing "tcp" before parens
//	user:pass@tcp(host:port)/db     → already correct
//
// When the password contains "@", the driver's ParseDSN splits on the last
// "@" before "/" — this works ONLY when "tcp(" is present, otherwise the
// parser treats the password fragment as a network name.
func sanitizeMySQLDSN(dsn string) string {
	// If it already parses cleanly and has a known network, trust it.
	if cfg, err := mysqldriver.ParseDSN(dsn); err == nil && (cfg.Net == "tcp" || cfg.Net == "unix") {
		return cfg.FormatDSN()
	}

	// Pattern: user:pass@(host:port)/db — missing "tcp" keyword.
	if idx := strings.LastIndex(dsn, "@("); idx >= 0 {
		fixed := dsn[:idx] + "@tcp" + dsn[idx+1:]
		if cfg, err := mysqldriver.ParseDSN(fixed); err == nil {
			return cfg.FormatDSN()
		}
	}

	// Pattern: user:pass@host:port/db — no parens at all.
	if m := mysqlBareHostPort.FindStringSubmatch(dsn); m != nil {
		fixed := m[1] + "@tcp(" + m[2] + ")" + m[3]
		if cfg, err := mysqldriver.ParseDSN(fixed); err == nil {
			return cfg.FormatDSN()
		}
	}

	// Nothing worked — return as-is and let the connect call give a clear error.
	return dsn
}

// sanitizeURLDSN parses a DSN that begins with a scheme (e.g.
// postgres://user:p@ss#word@host/db) and re-encodes the password so the
// URL library can parse it unambiguously.
func sanitizeURLDSN(dsn string) string {
	schemeEnd := strings.Index(dsn, "://")
	if schemeEnd < 0 {
		return dsn // not a URL-style DSN, return as-is
	}

	scheme := dsn[:schemeEnd]
	rest := dsn[schemeEnd+3:]

	// Split off query/fragment from the authority+path portion.
	query := ""
	if qi := strings.IndexByte(rest, '?'); qi >= 0 {
		query = rest[qi:]
		rest = rest[:qi]
	}

	// Find the LAST '@' — everything before it is userinfo, everything after is host+path.
	atIdx := strings.LastIndex(rest, "@")
	if atIdx < 0 {
		return dsn // no credentials in the DSN
	}

	userinfo := rest[:atIdx]
	hostpath := rest[atIdx+1:]

	user := userinfo
	pass := ""
	if ci := strings.IndexByte(userinfo, ':'); ci >= 0 {
		user = userinfo[:ci]
		pass = userinfo[ci+1:]
	}

	// url.QueryEscape encodes spaces as '+' which isn't great for
	// passwords; percent-encode only the characters that break URL parsing.
	return scheme + "://" + url.PathEscape(user) + ":" + url.PathEscape(pass) + "@" + hostpath + query
}
