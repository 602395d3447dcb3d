// Package dataloader moves a tabular object from OCI Object Storage into an
// Autonomous Data Warehouse table.
package dataloader

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
	"github.com/odm-project/odm/pkg/tabular"
)

// DataLoader reads one object from a bucket and bulk-writes it to a table.
type DataLoader struct {
	logger  logging.Interface
	Config  Config
	Storage *objectstorage.Client
	ADW     *adw.Client
}

// NewDataLoader validates the config and assembles the loader.
func NewDataLoader(config *Config, storage *objectstorage.Client, warehouse *adw.Client) (*DataLoader, error) {
	if config == nil {
		return nil, fmt.Errorf("data loader config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("data loader config is invalid: %w", err)
	}

	return &DataLoader{
		logger:  config.AnotherLogger,
		Config:  *config,
		Storage: storage,
		ADW:     warehouse,
	}, nil
}

// Start runs the load end to end: fetch, parse, clean, write.
func (d *DataLoader) Start() error {
	d.logger.WithField("object", d.Config.Source.ObjectName).
		WithField("table", d.Config.Table).
		Info("Starting data load")

	df, err := d.readSource()
	if err != nil {
		return err
	}

	mode, err := adw.ParseWriteMode(d.Config.Mode)
	if err != nil {
		return err
	}

	opts := []adw.WriteOption{adw.WithMode(mode)}
	if d.Config.BatchSize > 0 {
		opts = append(opts, adw.WithWriteBatchSize(d.Config.BatchSize))
	}

	written, err := d.ADW.WriteDataFrame(context.Background(), df, d.Config.Table, opts...)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s into %s", d.Config.Source.ObjectName, d.Config.Table)
	}

	d.logger.Infof("Loaded %d rows from %s into %s", written, d.Config.Source.ObjectName, d.Config.Table)
	return nil
}

func (d *DataLoader) readSource() (dataframe.DataFrame, error) {
	format, err := tabular.DetectFormat(d.Config.Source.ObjectName)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	switch format {
	case tabular.FormatParquet:
		return d.Storage.ReadParquet(d.Config.Source)
	default:
		return d.Storage.ReadCSV(d.Config.Source)
	}
}
