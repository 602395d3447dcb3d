package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// WriteParquet writes df as a parquet file with one optional leaf column per
// dataframe column. Columns are written in the parquet schema's field order,
// which sorts names alphabetically. NA cells become parquet nulls.
func WriteParquet(df dataframe.DataFrame, w io.Writer) error {
	if df.Err != nil {
		return df.Err
	}
	if df.Ncol() == 0 {
		return errors.New("dataframe has no columns")
	}

	writer := parquet.NewGenericWriter[map[string]interface{}](w, parquetSchemaFor(df))

	rows := df.Maps()
	for _, row := range rows {
		// a missing key is written as null for an optional field
		for k, v := range row {
			if v == nil {
				delete(row, k)
			}
		}
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("writing parquet rows: %w", err)
		}
	}
	return writer.Close()
}

// ReadParquet reads a flat parquet file into a dataframe. Timestamp and date
// columns become RFC3339 strings, other leaves map onto the closest gota
// series type.
func ReadParquet(data []byte) (dataframe.DataFrame, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("opening parquet file: %w", err)
	}

	fields := f.Schema().Fields()
	if len(fields) == 0 {
		return dataframe.DataFrame{}, errors.New("parquet file has no columns")
	}
	for _, field := range fields {
		if !field.Leaf() {
			return dataframe.DataFrame{}, fmt.Errorf("nested parquet column %s is not supported", field.Name())
		}
	}

	columns := make([][]interface{}, len(fields))
	for i := range columns {
		columns[i] = make([]interface{}, 0, f.NumRows())
	}

	if err := readParquetValues(f, columns); err != nil {
		return dataframe.DataFrame{}, err
	}

	cols := make([]series.Series, len(fields))
	for i, field := range fields {
		cols[i] = series.New(columns[i], seriesTypeForParquet(field), field.Name())
	}

	df := dataframe.New(cols...)
	return df, df.Err
}

func readParquetValues(f *parquet.File, columns [][]interface{}) error {
	fields := f.Schema().Fields()

	for _, rowGroup := range f.RowGroups() {
		rows := rowGroup.Rows()

		buf := make([]parquet.Row, 128)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, value := range row {
					ci := value.Column()
					if ci < 0 || ci >= len(columns) {
						_ = rows.Close()
						return fmt.Errorf("parquet value for unknown column index %d", ci)
					}
					columns[ci] = append(columns[ci], parquetCell(value, fields[ci]))
				}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = rows.Close()
				return fmt.Errorf("reading parquet rows: %w", err)
			}
			if n == 0 {
				break
			}
		}

		if err := rows.Close(); err != nil {
			return err
		}
	}

	return nil
}

func parquetSchemaFor(df dataframe.DataFrame) *parquet.Schema {
	group := parquet.Group{}
	names := df.Names()
	types := df.Types()

	for i, name := range names {
		var node parquet.Node
		switch types[i] {
		case series.Int:
			node = parquet.Int(64)
		case series.Float:
			node = parquet.Leaf(parquet.DoubleType)
		case series.Bool:
			node = parquet.Leaf(parquet.BooleanType)
		default:
			node = parquet.String()
		}
		group[name] = parquet.Optional(node)
	}

	return parquet.NewSchema("dataframe", group)
}

func seriesTypeForParquet(field parquet.Field) series.Type {
	if lt := field.Type().LogicalType(); lt != nil && (lt.Timestamp != nil || lt.Date != nil) {
		return series.String
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return series.Bool
	case parquet.Int32, parquet.Int64:
		return series.Int
	case parquet.Float, parquet.Double:
		return series.Float
	default:
		return series.String
	}
}

func parquetCell(v parquet.Value, field parquet.Field) interface{} {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		if s, ok := logicalTimeString(int64(v.Int32()), field); ok {
			return s
		}
		return int(v.Int32())
	case parquet.Int64:
		if s, ok := logicalTimeString(v.Int64(), field); ok {
			return s
		}
		return int(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}

// logicalTimeString renders timestamp and date logical types as RFC3339
// strings, which is how time values live in gota frames.
func logicalTimeString(raw int64, field parquet.Field) (string, bool) {
	lt := field.Type().LogicalType()
	if lt == nil {
		return "", false
	}

	if lt.Date != nil {
		return time.Unix(0, 0).UTC().AddDate(0, 0, int(raw)).Format(time.RFC3339Nano), true
	}

	if lt.Timestamp != nil {
		return timestampFromUnit(raw, lt.Timestamp.Unit).UTC().Format(time.RFC3339Nano), true
	}

	return "", false
}

func timestampFromUnit(raw int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Millis != nil:
		return time.UnixMilli(raw)
	case unit.Micros != nil:
		return time.UnixMicro(raw)
	default:
		return time.Unix(0, raw)
	}
}
