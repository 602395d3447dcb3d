package exporter

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

const testConfigYaml = `
exporter:
  query: SELECT region, SUM(amount) AS total FROM sales GROUP BY region
  target:
    bucket_name: reports
    object_name: totals/2026-08.parquet
`

func TestNewConfigWithViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(testConfigYaml)))

	config, err := NewConfig(WithViper(v), WithAnotherLog(logging.Discard()))
	require.NoError(t, err)

	assert.Contains(t, config.Query, "GROUP BY region")
	assert.Equal(t, "reports", config.Target.BucketName)
	assert.Equal(t, "totals/2026-08.parquet", config.Target.ObjectName)

	assert.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Query:  "SELECT 1 FROM dual",
		Target: objectstorage.ObjectURI{ObjectName: "out.csv"},
	}
	assert.NoError(t, valid.Validate())

	missingQuery := valid
	missingQuery.Query = ""
	assert.Error(t, missingQuery.Validate())

	missingObject := valid
	missingObject.Target = objectstorage.ObjectURI{}
	assert.Error(t, missingObject.Validate())
}
