package tabular

import (
	"io"

	"github.com/go-gota/gota/dataframe"
)

// ReadCSV reads CSV content into a dataframe. Types are detected per column
// unless overridden through load options.
func ReadCSV(r io.Reader, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, options...)
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

// WriteCSV writes df as CSV, header included by default.
func WriteCSV(df dataframe.DataFrame, w io.Writer, options ...dataframe.WriteOption) error {
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w, options...)
}
