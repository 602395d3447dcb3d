package tabular

import (
	"bytes"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParquetRoundTrip(t *testing.T) {
	df := dataframe.New(
		series.New([]interface{}{1, nil, 3}, series.Int, "ID"),
		series.New([]interface{}{"alpha", "beta", nil}, series.String, "NAME"),
		series.New([]interface{}{1.5, nil, -2.25}, series.Float, "SCORE"),
		series.New([]interface{}{true, false, nil}, series.Bool, "ACTIVE"),
	)
	require.NoError(t, df.Err)

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(df, &buf))

	out, err := ReadParquet(buf.Bytes())
	require.NoError(t, err)

	// parquet group schemas order fields alphabetically
	assert.Equal(t, []string{"ACTIVE", "ID", "NAME", "SCORE"}, out.Names())
	require.Equal(t, 3, out.Nrow())

	id := out.Col("ID")
	assert.Equal(t, series.Int, id.Type())
	assert.Equal(t, 1, id.Elem(0).Val())
	assert.True(t, id.Elem(1).IsNA())
	assert.Equal(t, 3, id.Elem(2).Val())

	name := out.Col("NAME")
	assert.Equal(t, "alpha", name.Elem(0).Val())
	assert.True(t, name.Elem(2).IsNA())

	score := out.Col("SCORE")
	assert.Equal(t, series.Float, score.Type())
	assert.Equal(t, 1.5, score.Elem(0).Val())
	assert.True(t, score.Elem(1).IsNA())
	assert.Equal(t, -2.25, score.Elem(2).Val())

	active := out.Col("ACTIVE")
	assert.Equal(t, series.Bool, active.Type())
	v, err := active.Elem(0).Bool()
	require.NoError(t, err)
	assert.True(t, v)
	assert.True(t, active.Elem(2).IsNA())
}

func TestParquetEmptyFrame(t *testing.T) {
	df := dataframe.New(
		series.New([]int{}, series.Int, "ID"),
		series.New([]string{}, series.String, "NAME"),
	)
	require.NoError(t, df.Err)

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(df, &buf))

	out, err := ReadParquet(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Nrow())
	assert.Equal(t, []string{"ID", "NAME"}, out.Names())
}

func TestWriteParquetErrors(t *testing.T) {
	var buf bytes.Buffer

	broken := dataframe.DataFrame{Err: assert.AnError}
	assert.Error(t, WriteParquet(broken, &buf))

	assert.Error(t, WriteParquet(dataframe.DataFrame{}, &buf))
}

func TestReadParquetErrors(t *testing.T) {
	_, err := ReadParquet([]byte("not a parquet file"))
	assert.Error(t, err)

	_, err = ReadParquet(nil)
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	df := sampleFrame()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(df, &buf))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, df.Names(), out.Names())
	assert.Equal(t, df.Records(), out.Records())
}

func TestWriteCSVBrokenFrame(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(dataframe.DataFrame{Err: assert.AnError}, &buf))
}
