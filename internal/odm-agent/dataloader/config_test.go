package dataloader

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
data_loader:
  source:
    bucket_name: raw-data
    object_name: sales/2026-08.csv
  table: sales
  mode: replace
  batch_size: 5000
`

func TestNewConfigWithViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(testConfigYaml)))

	config, err := NewConfig(WithViper(v), WithAnotherLog(logging.Discard()))
	require.NoError(t, err)

	assert.Equal(t, "raw-data", config.Source.BucketName)
	assert.Equal(t, "sales/2026-08.csv", config.Source.ObjectName)
	assert.Equal(t, "sales", config.Table)
	assert.Equal(t, "replace", config.Mode)
	assert.Equal(t, 5000, config.BatchSize)

	assert.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Source: objectstorage.ObjectURI{ObjectName: "data.csv"},
		Table:  "sales",
	}
	assert.NoError(t, valid.Validate())

	missingTable := valid
	missingTable.Table = ""
	assert.Error(t, missingTable.Validate())

	missingObject := valid
	missingObject.Source = objectstorage.ObjectURI{BucketName: "raw-data"}
	assert.Error(t, missingObject.Validate())
}
