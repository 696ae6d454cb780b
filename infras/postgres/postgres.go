package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"roombook/config"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Name     string
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

// DSN renders the endpoint as a postgres URL. Extra query parameters are appended as given.
func (e Endpoint) DSN(params map[string]string) string {
	query := url.Values{}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	for key, value := range params {
		query.Set(key, value)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.DBName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// WriteEndpoint returns the primary node, which also runs migrations.
func WriteEndpoint(cfg *config.Config) Endpoint {
	write := cfg.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Username: write.Username,
		Password: write.Password,
		Host:     write.Host,
		Port:     write.Port,
		DBName:   dbName(cfg, write.Name),
		SSLMode:  write.SSLMode,
	}
}

// ReadEndpoint returns the replica, or the primary when no replica host is configured.
func ReadEndpoint(cfg *config.Config) Endpoint {
	read := cfg.DB.Postgres.Read
	if read.Host == "" {
		endpoint := WriteEndpoint(cfg)
		endpoint.Name = "read"

		return endpoint
	}

	return Endpoint{
		Name:     "read",
		Username: read.Username,
		Password: read.Password,
		Host:     read.Host,
		Port:     read.Port,
		DBName:   dbName(cfg, read.Name),
		SSLMode:  read.SSLMode,
	}
}

// New opens the read and write pools. It returns nil when reservations are kept
// in memory so nothing downstream tries to reach a database.
func New(cfg *config.Config) *Connection {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		log.Info().Str("driver", cfg.Store.Driver).Msg("Postgres disabled for this store driver")

		return nil
	}

	retries, wait := cfg.DB.Postgres.MaxRetry, time.Duration(cfg.DB.Postgres.RetryWaitTime)*time.Second

	return &Connection{
		Read:  Connect(ReadEndpoint(cfg), retries, wait),
		Write: Connect(WriteEndpoint(cfg), retries, wait),
	}
}

// Close releases both pools.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

func dbName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// Connect dials the endpoint, retrying up to maxRetry times. It returns nil when every attempt fails.
func Connect(endpoint Endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	for attempt := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN(nil))
		if err == nil {
			log.
				Info().
				Str("name", endpoint.Name).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", endpoint.DBName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", endpoint.Name).
			Str("host", endpoint.Host).
			Str("dbName", endpoint.DBName).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	log.Error().Str("name", endpoint.Name).Int("attempts", maxRetry).Msg("Giving up on database")

	return nil
}
