// Package tabular adapts gota dataframes for storage and database use:
// CSV and Parquet codecs, column cleaning for Oracle compatibility, row
// chunking for batched writes, and SQL result set conversion.
package tabular

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultChunkSize is the row count per chunk used by batch writers.
const DefaultChunkSize = 10000

// Clean returns a copy of df with column names normalized for database use:
// upper-cased with spaces replaced by underscores. The frame must be
// non-empty and the normalized names must be unique.
func Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}
	if df.Nrow() == 0 {
		return df, errors.New("dataframe is empty")
	}

	names := df.Names()
	cleaned := make([]string, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		c := strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
		if _, dup := seen[c]; dup {
			return df, fmt.Errorf("duplicate column name after normalization: %s", c)
		}
		seen[c] = struct{}{}
		cleaned[i] = c
	}

	out := df.Copy()
	if err := out.SetNames(cleaned...); err != nil {
		return df, err
	}
	return out, nil
}

// Chunk splits df into frames of at most size rows, preserving order.
// A non-positive size falls back to DefaultChunkSize.
func Chunk(df dataframe.DataFrame, size int) []dataframe.DataFrame {
	if size <= 0 {
		size = DefaultChunkSize
	}

	total := df.Nrow()
	if total <= size {
		return []dataframe.DataFrame{df}
	}

	chunks := make([]dataframe.DataFrame, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		indexes := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			indexes = append(indexes, i)
		}
		chunks = append(chunks, df.Subset(indexes))
	}
	return chunks
}

// FromRows builds a dataframe from SQL result rows, keeping the query's
// column order. Driver values are normalized first: byte slices become
// strings, timestamps become RFC3339 strings, integer widths collapse to
// int, NULLs become NA cells. The column's type is taken from its first
// non-NULL value; columns that are entirely NULL come out as strings.
func FromRows(columns []string, rows []map[string]interface{}) (dataframe.DataFrame, error) {
	if len(columns) == 0 {
		return dataframe.DataFrame{}, errors.New("no columns")
	}

	cols := make([]series.Series, len(columns))
	for ci, name := range columns {
		values := make([]interface{}, len(rows))
		t := series.String
		typed := false
		for ri, row := range rows {
			v := normalizeValue(row[name])
			values[ri] = v
			if !typed && v != nil {
				t = seriesTypeOf(v)
				typed = true
			}
		}
		cols[ci] = series.New(values, t, name)
	}

	df := dataframe.New(cols...)
	return df, df.Err
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case int:
		return val
	case int8:
		return int(val)
	case int16:
		return int(val)
	case int32:
		return int(val)
	case int64:
		return int(val)
	case uint:
		return int(val)
	case uint8:
		return int(val)
	case uint16:
		return int(val)
	case uint32:
		return int(val)
	case uint64:
		return int(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case bool:
		return val
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func seriesTypeOf(v interface{}) series.Type {
	switch v.(type) {
	case int:
		return series.Int
	case float64:
		return series.Float
	case bool:
		return series.Bool
	default:
		return series.String
	}
}
