package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported tabular file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DetectFormat infers the tabular format from a file or object name's
// extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("cannot infer tabular format from %q, expected a .csv or .parquet extension", name)
}
