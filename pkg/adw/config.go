package adw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"

	"github.com/odm-project/odm/pkg/logging"
)

// ConfigKey is the root configuration key (in Viper) for this module.
var ConfigKey = "adw"

const (
	defaultPoolMin         = 1
	defaultPoolMax         = 5
	defaultConnectTimeout  = 30 * time.Second
	defaultConnMaxLifetime = 5 * time.Minute
)

// Config holds the parameters required to connect to an Autonomous Data
// Warehouse. Fields are populated using viper, environment values, or
// explicitly through Options.
type Config struct {
	AnotherLogger logging.Interface

	// ConnectionString is either a full TNS descriptor ("(DESCRIPTION=...)")
	// or a "host[:port]/service" shorthand.
	ConnectionString string `mapstructure:"connection_string" validate:"required"`

	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`

	// PoolMin and PoolMax bound the connection pool. They map onto
	// database/sql's MaxIdleConns and MaxOpenConns.
	PoolMin int `mapstructure:"pool_min"`
	PoolMax int `mapstructure:"pool_max"`

	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// Wallet points at an unzipped cloud wallet directory for mTLS
	// connections. Optional when the descriptor carries TLS config.
	Wallet string `mapstructure:"wallet"`

	// SSL enables TLS for shorthand connection strings. SSLVerify controls
	// server certificate verification.
	SSL       bool `mapstructure:"ssl"`
	SSLVerify bool `mapstructure:"ssl_verify"`
}

// Option defines a functional configuration override for building a Config.
type Option func(*Config) error

// Apply applies a sequence of configuration options to the Config instance.
func (c *Config) Apply(opts ...Option) error {
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig constructs and returns a new Config by applying the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// WithViper populates the Config from the "adw" viper key.
func WithViper(v *viper.Viper) Option {
	return WithViperKey(v, ConfigKey)
}

// WithViperKey populates the Config from a specific viper key, for setups
// with more than one warehouse in the same config file.
func WithViperKey(v *viper.Viper, configKey string) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("nil Viper")
		}
		return v.UnmarshalKey(configKey, c)
	}
}

// WithAnotherLog sets the logger to be used by the Config.
func WithAnotherLog(logger logging.Interface) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("nil another logger")
		}
		c.AnotherLogger = logger
		return nil
	}
}

// Validate performs struct validation using go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.PoolMin < 0 || c.PoolMax < 0 {
		return errors.New("pool sizes must be >= 0")
	}
	if c.PoolMax > 0 && c.PoolMin > c.PoolMax {
		return fmt.Errorf("pool_min %d exceeds pool_max %d", c.PoolMin, c.PoolMax)
	}
	return nil
}

func (c *Config) poolMin() int {
	if c.PoolMin <= 0 {
		return defaultPoolMin
	}
	return c.PoolMin
}

func (c *Config) poolMax() int {
	if c.PoolMax <= 0 {
		return defaultPoolMax
	}
	return c.PoolMax
}

func (c *Config) connectTimeout() time.Duration {
	if c.ConnectTimeout <= 0 {
		return defaultConnectTimeout
	}
	return c.ConnectTimeout
}

func (c *Config) connMaxLifetime() time.Duration {
	if c.ConnMaxLifetime <= 0 {
		return defaultConnMaxLifetime
	}
	return c.ConnMaxLifetime
}

// buildDSN renders the go-ora connection URL for c. TNS descriptors go
// through BuildJDBC, "host[:port]/service" shorthands through BuildUrl.
func (c *Config) buildDSN() (string, error) {
	urlOptions := map[string]string{}
	if c.Wallet != "" {
		urlOptions["wallet"] = c.Wallet
	}
	if c.SSL {
		urlOptions["ssl"] = "true"
		urlOptions["ssl verify"] = strconv.FormatBool(c.SSLVerify)
	}

	connStr := strings.TrimSpace(c.ConnectionString)
	if strings.HasPrefix(connStr, "(") {
		return go_ora.BuildJDBC(c.Username, c.Password, connStr, urlOptions), nil
	}

	hostPart, service, found := strings.Cut(connStr, "/")
	if !found || service == "" {
		return "", fmt.Errorf("connection string %q is neither a TNS descriptor nor host[:port]/service", c.ConnectionString)
	}

	host := hostPart
	port := 1521
	if h, p, found := strings.Cut(hostPart, ":"); found {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("invalid port in connection string %q: %w", c.ConnectionString, err)
		}
		host = h
		port = parsed
	}
	if host == "" {
		return "", fmt.Errorf("empty host in connection string %q", c.ConnectionString)
	}

	return go_ora.BuildUrl(host, port, service, c.Username, c.Password, urlOptions), nil
}
