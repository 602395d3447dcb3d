// Package exporter runs a query against an Autonomous Data Warehouse and
// writes the result set to OCI Object Storage as a tabular object.
package exporter

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
	"github.com/odm-project/odm/pkg/tabular"
)

// Exporter runs one query and stores the result as a bucket object.
type Exporter struct {
	logger  logging.Interface
	Config  Config
	Storage *objectstorage.Client
	ADW     *adw.Client
}

// NewExporter validates the config and assembles the exporter.
func NewExporter(config *Config, storage *objectstorage.Client, warehouse *adw.Client) (*Exporter, error) {
	if config == nil {
		return nil, fmt.Errorf("exporter config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("exporter config is invalid: %w", err)
	}

	return &Exporter{
		logger:  config.AnotherLogger,
		Config:  *config,
		Storage: storage,
		ADW:     warehouse,
	}, nil
}

// Start runs the export end to end: query, serialize, upload.
func (e *Exporter) Start() error {
	e.logger.WithField("object", e.Config.Target.ObjectName).Info("Starting export")

	format, err := tabular.DetectFormat(e.Config.Target.ObjectName)
	if err != nil {
		return err
	}

	df, err := e.ADW.ReadSQL(context.Background(), e.Config.Query)
	if err != nil {
		return errors.Wrap(err, "export query failed")
	}

	switch format {
	case tabular.FormatParquet:
		err = e.Storage.WriteParquet(e.Config.Target, df)
	default:
		err = e.Storage.WriteCSV(e.Config.Target, df)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to write export to %s", e.Config.Target.ObjectName)
	}

	e.logger.Infof("Exported %d rows to %s", df.Nrow(), e.Config.Target.ObjectName)
	return nil
}
