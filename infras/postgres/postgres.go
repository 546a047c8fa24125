package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"rendezvous/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

var errUnreachable = errors.New("database unreachable")

// Connection splits reads and writes. Locks and transactions always go to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  mustConnect("read", cfg.DB.Postgres.Read, *cfg),
		Write: mustConnect("write", cfg.DB.Postgres.Write, *cfg),
	}
}

// NewSingle serves reads and writes from one pool.
func NewSingle(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

func (c *Connection) Close() error {
	if c.Read == c.Write {
		return c.Write.Close() //nolint:wrapcheck
	}

	return errors.Join(c.Read.Close(), c.Write.Close())
}

// DSN renders endpoint as a lib/pq connection URL, applying the configured database prefix.
func DSN(endpoint config.PostgresEndpoint, prefix string) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(endpoint.Username, endpoint.Password),
		Host:   net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:   prefix + endpoint.Name,
	}

	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func mustConnect(name string, endpoint config.PostgresEndpoint, cfg config.Config) *sqlx.DB {
	db, err := Connect(name, DSN(endpoint, cfg.DB.Postgres.Prefix), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Str("host", endpoint.Host).Msg("Giving up on database")
	}

	return db
}

// Connect dials dsn, retrying up to maxRetry times with waitTime seconds between attempts.
func Connect(name, dsn string, maxRetry, waitTime int) (*sqlx.DB, error) {
	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")

			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			return db, nil
		}

		log.Error().Err(err).Str("name", name).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w after %d attempts (%s)", errUnreachable, max(maxRetry, 1), name)
}
