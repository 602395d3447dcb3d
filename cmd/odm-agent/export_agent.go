package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/odm-project/odm/internal/odm-agent/exporter"
	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/afero"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

// ExportAgent implements the AgentModule interface for warehouse-to-bucket
// exports.
type ExportAgent struct {
	agent *exporter.Exporter
}

// Name returns the name of the agent
func (a *ExportAgent) Name() string {
	return "export"
}

// ShortDescription returns a short description of the agent
func (a *ExportAgent) ShortDescription() string {
	return "Export an ADW query result to a bucket object"
}

// LongDescription returns a detailed description of the agent
func (a *ExportAgent) LongDescription() string {
	return "Runs a SQL query against an Autonomous Data Warehouse and writes the result set to OCI Object Storage as a CSV or Parquet object."
}

// ConfigureCommand configures the agent command
func (a *ExportAgent) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runAgentCommand(cmd, a, a.Start)
	}
}

// FxModules returns the fx modules needed by this agent
func (a *ExportAgent) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		objectstorage.Module,
		adw.Module,
		exporter.Module,
		fx.Populate(&a.agent),
	}
}

// Start starts the agent
func (a *ExportAgent) Start() error {
	return a.agent.Start()
}

// NewExportAgent creates a new export agent
func NewExportAgent() *ExportAgent {
	return &ExportAgent{}
}
