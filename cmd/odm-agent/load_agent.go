package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/odm-project/odm/internal/odm-agent/dataloader"
	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/afero"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

// LoadAgent implements the AgentModule interface for bucket-to-warehouse
// loads.
type LoadAgent struct {
	agent *dataloader.DataLoader
}

// Name returns the name of the agent
func (a *LoadAgent) Name() string {
	return "load"
}

// ShortDescription returns a short description of the agent
func (a *LoadAgent) ShortDescription() string {
	return "Load a bucket object into an ADW table"
}

// LongDescription returns a detailed description of the agent
func (a *LoadAgent) LongDescription() string {
	return "Reads a CSV or Parquet object from OCI Object Storage, cleans its columns, and bulk-writes it into an Autonomous Data Warehouse table."
}

// ConfigureCommand configures the agent command
func (a *LoadAgent) ConfigureCommand(cmd *cobra.Command) {
	cmd.Run = func(cmd *cobra.Command, args []string) {
		runAgentCommand(cmd, a, a.Start)
	}
}

// FxModules returns the fx modules needed by this agent
func (a *LoadAgent) FxModules() []fx.Option {
	return []fx.Option{
		afero.Module,
		logging.Module,
		logging.ModuleNamed("another_log"),
		objectstorage.Module,
		adw.Module,
		dataloader.Module,
		fx.Populate(&a.agent),
	}
}

// Start starts the agent
func (a *LoadAgent) Start() error {
	return a.agent.Start()
}

// NewLoadAgent creates a new load agent
func NewLoadAgent() *LoadAgent {
	return &LoadAgent{}
}
