// Package adw wraps a pooled database/sql connection to an Autonomous Data
// Warehouse for dataframe consumption: queries come back as gota frames and
// bulk writes are chunked into batched, transactional inserts.
package adw

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2"

	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/tabular"
)

// DefaultBatchSize is the row count per ExecBatch transaction chunk.
const DefaultBatchSize = 1000

func init() {
	// go-ora registers as "oracle"; teach sqlx its :name bind style.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// Client executes SQL and bulk dataframe writes over a pooled connection.
// It is stateless beyond the pool itself.
type Client struct {
	logger logging.Interface
	config *Config
	db     *sqlx.DB
}

// NewClient validates the config, opens the pool, and verifies connectivity
// with a ping.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("adw config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("adw config is invalid: %w", err)
	}

	dsn, err := config.buildDSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(config.poolMax())
	db.SetMaxIdleConns(config.poolMin())
	db.SetConnMaxLifetime(config.connMaxLifetime())

	logger := config.AnotherLogger
	if logger == nil {
		logger = logging.Discard()
	}

	client := &Client{
		logger: logger,
		config: config,
		db:     db,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.connectTimeout())
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.WithField("pool_max", config.poolMax()).Info("Connected to ADW")
	return client, nil
}

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// ReadSQL runs query and returns the result set as a dataframe. Column order
// follows the select list.
func (c *Client) ReadSQL(ctx context.Context, query string, args ...interface{}) (dataframe.DataFrame, error) {
	rows, err := c.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	var records []map[string]interface{}
	for rows.Next() {
		record := map[string]interface{}{}
		if err := rows.MapScan(record); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("row iteration failed: %w", err)
	}

	return tabular.FromRows(columns, records)
}

// Exec runs a single statement and returns the number of rows affected.
func (c *Client) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		// Some statements (DDL) do not report a row count.
		return 0, nil
	}
	return affected, nil
}

// BatchOptions controls ExecBatch chunking.
type BatchOptions struct {
	BatchSize int
}

// BatchOption is a functional override for BatchOptions.
type BatchOption func(*BatchOptions)

// WithBatchSize sets the row count per transaction chunk.
func WithBatchSize(size int) BatchOption {
	return func(o *BatchOptions) {
		o.BatchSize = size
	}
}

func applyBatchOptions(opts ...BatchOption) BatchOptions {
	options := BatchOptions{BatchSize: DefaultBatchSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultBatchSize
	}
	return options
}

// ExecBatch runs query once per row inside chunked transactions: each chunk
// shares one prepared statement and commits before the next chunk starts.
// Returns the total number of rows affected.
func (c *Client) ExecBatch(ctx context.Context, query string, rows [][]interface{}, opts ...BatchOption) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	options := applyBatchOptions(opts...)

	var total int64
	for start := 0; start < len(rows); start += options.BatchSize {
		end := start + options.BatchSize
		if end > len(rows) {
			end = len(rows)
		}

		affected, err := c.execChunk(ctx, query, rows[start:end])
		if err != nil {
			return total, fmt.Errorf("batch starting at row %d failed: %w", start, err)
		}
		total += affected
	}
	return total, nil
}

func (c *Client) execChunk(ctx context.Context, query string, chunk [][]interface{}) (int64, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}

	var affected int64
	for _, row := range chunk {
		result, err := stmt.ExecContext(ctx, row...)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, err
		}
		if n, err := result.RowsAffected(); err == nil {
			affected += n
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return affected, nil
}

// TableExists reports whether table exists in the connected schema.
// Matching is case-insensitive, following Oracle's upper-cased catalog.
func (c *Client) TableExists(ctx context.Context, table string) (bool, error) {
	if err := validateIdentifier(table); err != nil {
		return false, err
	}

	var count int
	err := c.db.QueryRowxContext(ctx,
		"SELECT COUNT(*) FROM user_tables WHERE table_name = :1",
		normalizeIdentifier(table),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return count > 0, nil
}

// TableInfo returns table's column layout (name, data type, length,
// nullability) as a dataframe, in column order.
func (c *Client) TableInfo(ctx context.Context, table string) (dataframe.DataFrame, error) {
	if err := validateIdentifier(table); err != nil {
		return dataframe.DataFrame{}, err
	}

	return c.ReadSQL(ctx,
		`SELECT column_name, data_type, data_length, nullable
		 FROM user_tab_columns WHERE table_name = :1 ORDER BY column_id`,
		normalizeIdentifier(table),
	)
}
