package objectstorage

import (
	"bytes"
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/odm-project/odm/pkg/tabular"
)

// ReadCSV fetches the object named by uri and parses it as CSV.
func (c *Client) ReadCSV(uri ObjectURI, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	data, err := c.ReadObject(uri)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err := tabular.ReadCSV(bytes.NewReader(data), options...)
	if err != nil {
		return df, fmt.Errorf("failed to parse object %s as CSV: %w", uri.ObjectName, err)
	}
	return df, nil
}

// WriteCSV serializes df as CSV and stores it as uri's object.
func (c *Client) WriteCSV(uri ObjectURI, df dataframe.DataFrame, options ...dataframe.WriteOption) error {
	var buf bytes.Buffer
	if err := tabular.WriteCSV(df, &buf, options...); err != nil {
		return fmt.Errorf("failed to serialize dataframe as CSV: %w", err)
	}
	return c.WriteObject(uri, buf.Bytes())
}

// ReadParquet fetches the object named by uri and parses it as Parquet.
func (c *Client) ReadParquet(uri ObjectURI) (dataframe.DataFrame, error) {
	data, err := c.ReadObject(uri)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err := tabular.ReadParquet(data)
	if err != nil {
		return df, fmt.Errorf("failed to parse object %s as Parquet: %w", uri.ObjectName, err)
	}
	return df, nil
}

// WriteParquet serializes df as Parquet and stores it as uri's object.
func (c *Client) WriteParquet(uri ObjectURI, df dataframe.DataFrame) error {
	var buf bytes.Buffer
	if err := tabular.WriteParquet(df, &buf); err != nil {
		return fmt.Errorf("failed to serialize dataframe as Parquet: %w", err)
	}
	return c.WriteObject(uri, buf.Bytes())
}
