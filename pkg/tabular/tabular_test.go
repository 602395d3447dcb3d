package tabular

import (
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"id", "name", "score"},
		{"1", "alpha", "1.5"},
		{"2", "beta", "2.5"},
		{"3", "gamma", "3.5"},
	})
}

func TestClean(t *testing.T) {
	t.Run("normalizes column names", func(t *testing.T) {
		df := dataframe.LoadRecords([][]string{
			{"user id", "Name", "created at"},
			{"1", "alpha", "2024-01-01"},
		})

		out, err := Clean(df)
		require.NoError(t, err)
		assert.Equal(t, []string{"USER_ID", "NAME", "CREATED_AT"}, out.Names())
		// the input frame keeps its original names
		assert.Equal(t, []string{"user id", "Name", "created at"}, df.Names())
	})

	t.Run("empty frame", func(t *testing.T) {
		df := dataframe.New(series.New([]string{}, series.String, "a"))
		_, err := Clean(df)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("duplicate after normalization", func(t *testing.T) {
		df := dataframe.LoadRecords([][]string{
			{"user id", "USER_ID"},
			{"1", "2"},
		})

		_, err := Clean(df)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column name")
	})
}

func TestChunk(t *testing.T) {
	df := sampleFrame()

	t.Run("splits with remainder", func(t *testing.T) {
		chunks := Chunk(df, 2)
		require.Len(t, chunks, 2)
		assert.Equal(t, 2, chunks[0].Nrow())
		assert.Equal(t, 1, chunks[1].Nrow())
		assert.Equal(t, "gamma", chunks[1].Elem(0, 1).String())
	})

	t.Run("size covering the frame", func(t *testing.T) {
		chunks := Chunk(df, 10)
		require.Len(t, chunks, 1)
		assert.Equal(t, 3, chunks[0].Nrow())
	})

	t.Run("non-positive size uses the default", func(t *testing.T) {
		chunks := Chunk(df, 0)
		require.Len(t, chunks, 1)
	})

	t.Run("exact multiple", func(t *testing.T) {
		chunks := Chunk(df, 1)
		require.Len(t, chunks, 3)
	})
}

func TestFromRows(t *testing.T) {
	t.Run("keeps column order and detects types", func(t *testing.T) {
		when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
		rows := []map[string]interface{}{
			{"ID": int64(1), "NAME": []byte("alpha"), "SCORE": 1.5, "SEEN": when},
			{"ID": int64(2), "NAME": []byte("beta"), "SCORE": nil, "SEEN": when},
		}

		df, err := FromRows([]string{"SEEN", "ID", "NAME", "SCORE"}, rows)
		require.NoError(t, err)

		assert.Equal(t, []string{"SEEN", "ID", "NAME", "SCORE"}, df.Names())
		assert.Equal(t, 2, df.Nrow())

		assert.Equal(t, series.Int, df.Types()[1])
		assert.Equal(t, series.String, df.Types()[2])
		assert.Equal(t, series.Float, df.Types()[3])

		assert.Equal(t, 1, df.Elem(0, 1).Val())
		assert.Equal(t, "alpha", df.Elem(0, 2).Val())
		assert.Equal(t, when.Format(time.RFC3339Nano), df.Elem(0, 0).Val())
		assert.True(t, df.Elem(1, 3).IsNA(), "NULL becomes NA")
	})

	t.Run("all NULL column falls back to string", func(t *testing.T) {
		rows := []map[string]interface{}{
			{"A": int64(1), "B": nil},
			{"A": int64(2), "B": nil},
		}

		df, err := FromRows([]string{"A", "B"}, rows)
		require.NoError(t, err)
		assert.Equal(t, series.String, df.Types()[1])
		assert.True(t, df.Elem(0, 1).IsNA())
	})

	t.Run("no rows still yields the columns", func(t *testing.T) {
		df, err := FromRows([]string{"A", "B"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, df.Names())
		assert.Equal(t, 0, df.Nrow())
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := FromRows(nil, nil)
		assert.Error(t, err)
	})
}

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, normalizeValue(nil))
	assert.Equal(t, "bytes", normalizeValue([]byte("bytes")))
	assert.Equal(t, 7, normalizeValue(int64(7)))
	assert.Equal(t, 7, normalizeValue(uint32(7)))
	assert.Equal(t, 1.5, normalizeValue(float32(1.5)))
	assert.Equal(t, true, normalizeValue(true))
	assert.Equal(t, "x", normalizeValue("x"))
}
