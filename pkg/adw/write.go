package adw

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/odm-project/odm/pkg/tabular"
)

// WriteMode selects the behavior of WriteDataFrame for existing tables.
type WriteMode string

const (
	// Append inserts into the table, creating it when missing.
	Append WriteMode = "append"

	// Replace drops and recreates the table before inserting.
	Replace WriteMode = "replace"

	// Fail errors out when the table already exists.
	Fail WriteMode = "fail"
)

// DefaultWriteBatchSize is the row count per insert chunk used by
// WriteDataFrame.
const DefaultWriteBatchSize = 10000

// ParseWriteMode maps a config string onto a WriteMode.
func ParseWriteMode(mode string) (WriteMode, error) {
	switch WriteMode(strings.ToLower(strings.TrimSpace(mode))) {
	case Append, "":
		return Append, nil
	case Replace:
		return Replace, nil
	case Fail:
		return Fail, nil
	}
	return "", fmt.Errorf("unknown write mode %q, expected append, replace, or fail", mode)
}

// WriteOptions controls WriteDataFrame behavior.
type WriteOptions struct {
	Mode       WriteMode
	BatchSize  int
	PrimaryKey []string
}

// WriteOption is a functional override for WriteOptions.
type WriteOption func(*WriteOptions)

// WithMode selects the existing-table behavior.
func WithMode(mode WriteMode) WriteOption {
	return func(o *WriteOptions) {
		o.Mode = mode
	}
}

// WithWriteBatchSize sets the row count per insert chunk.
func WithWriteBatchSize(size int) WriteOption {
	return func(o *WriteOptions) {
		o.BatchSize = size
	}
}

// WithPrimaryKey sets the (possibly composite) primary key used when the
// table is created.
func WithPrimaryKey(columns ...string) WriteOption {
	return func(o *WriteOptions) {
		o.PrimaryKey = columns
	}
}

func applyWriteOptions(opts ...WriteOption) WriteOptions {
	options := WriteOptions{Mode: Append, BatchSize: DefaultWriteBatchSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultWriteBatchSize
	}
	return options
}

// WriteDataFrame bulk-inserts df into table. Column names are cleaned for
// database use first. Inserts run through chunked transactions with
// positional binds. Returns the number of rows written.
func (c *Client) WriteDataFrame(ctx context.Context, df dataframe.DataFrame, table string, opts ...WriteOption) (int64, error) {
	options := applyWriteOptions(opts...)

	df, err := tabular.Clean(df)
	if err != nil {
		return 0, fmt.Errorf("dataframe is not database-ready: %w", err)
	}
	if err := validateIdentifier(table); err != nil {
		return 0, err
	}
	if err := validateColumns(df.Names()); err != nil {
		return 0, err
	}

	exists, err := c.TableExists(ctx, table)
	if err != nil {
		return 0, err
	}

	switch options.Mode {
	case Fail:
		if exists {
			return 0, fmt.Errorf("table %s already exists", table)
		}
		exists = false
	case Replace:
		if exists {
			if err := c.dropTable(ctx, table); err != nil {
				return 0, err
			}
		}
		exists = false
	case Append:
		// keep the table when present
	default:
		return 0, fmt.Errorf("unknown write mode %q", options.Mode)
	}

	if !exists {
		if err := c.CreateTableFromDataFrame(ctx, df, table, options.PrimaryKey...); err != nil {
			return 0, err
		}
	}

	insert := insertStatement(table, df.Names())
	rows := extractRows(df)

	written, err := c.ExecBatch(ctx, insert, rows, WithBatchSize(options.BatchSize))
	if err != nil {
		return written, fmt.Errorf("failed to write dataframe to %s: %w", table, err)
	}

	c.logger.WithField("table", table).Infof("Wrote %d rows", written)
	return written, nil
}

// CreateTableFromDataFrame creates table with columns derived from df's
// series types, plus an optional composite primary key.
func (c *Client) CreateTableFromDataFrame(ctx context.Context, df dataframe.DataFrame, table string, primaryKey ...string) error {
	df, err := tabular.Clean(df)
	if err != nil {
		return fmt.Errorf("dataframe is not database-ready: %w", err)
	}
	if err := validateIdentifier(table); err != nil {
		return err
	}

	names := df.Names()
	defs := make([]string, len(names))
	for i, name := range names {
		if err := validateIdentifier(name); err != nil {
			return err
		}
		defs[i] = fmt.Sprintf("%s %s", name, columnTypeFor(df.Select(name).Types()[0]))
	}

	if len(primaryKey) > 0 {
		keys := make([]string, len(primaryKey))
		for i, key := range primaryKey {
			if err := validateIdentifier(key); err != nil {
				return err
			}
			keys[i] = normalizeIdentifier(key)
		}
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(keys, ", ")))
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", normalizeIdentifier(table), strings.Join(defs, ", "))
	if _, err := c.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	c.logger.WithField("table", table).Info("Created table")
	return nil
}

// dropTable removes table. A missing table is not an error; everything else
// propagates.
func (c *Client) dropTable(ctx context.Context, table string) error {
	_, err := c.Exec(ctx, fmt.Sprintf("DROP TABLE %s", normalizeIdentifier(table)))
	if err != nil && !isTableMissing(err) {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}

// isTableMissing matches ORA-00942 (table or view does not exist).
func isTableMissing(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00942")
}

// columnTypeFor maps a gota series type onto an Oracle column type.
func columnTypeFor(t series.Type) string {
	switch t {
	case series.Int:
		return "NUMBER(19)"
	case series.Float:
		return "BINARY_DOUBLE"
	case series.Bool:
		return "NUMBER(1)"
	default:
		return "VARCHAR2(4000)"
	}
}

// insertStatement renders the positional-bind insert for table and columns.
func insertStatement(table string, columns []string) string {
	binds := make([]string, len(columns))
	for i := range columns {
		binds[i] = fmt.Sprintf(":%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		normalizeIdentifier(table), strings.Join(columns, ", "), strings.Join(binds, ", "))
}

// extractRows flattens df into positional bind rows. NA cells become NULLs,
// bools become 0/1 to match the NUMBER(1) column type.
func extractRows(df dataframe.DataFrame) [][]interface{} {
	types := df.Types()
	rows := make([][]interface{}, df.Nrow())
	for r := 0; r < df.Nrow(); r++ {
		row := make([]interface{}, df.Ncol())
		for col := 0; col < df.Ncol(); col++ {
			elem := df.Elem(r, col)
			if elem.IsNA() {
				row[col] = nil
				continue
			}
			if types[col] == series.Bool {
				value, err := elem.Bool()
				if err != nil {
					row[col] = nil
					continue
				}
				if value {
					row[col] = 1
				} else {
					row[col] = 0
				}
				continue
			}
			row[col] = elem.Val()
		}
		rows[r] = row
	}
	return rows
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$#]*$`)

// validateIdentifier rejects names that cannot be safely interpolated into
// DDL and insert statements. Bind parameters are not an option for
// identifiers, so the grammar is enforced instead.
func validateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

func validateColumns(names []string) error {
	for _, name := range names {
		if err := validateIdentifier(name); err != nil {
			return err
		}
	}
	return nil
}

func normalizeIdentifier(name string) string {
	return strings.ToUpper(name)
}
