package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odm-project/odm/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:     "odm-agent",
	Short:   "Run ODM Agent",
	Long:    "ODM Agent moves tabular data between OCI Object Storage and Autonomous Data Warehouse.",
	Version: fmt.Sprintf("gitVersion=%s, gitCommit=%s", version.GitVersion, version.GitCommit),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(CreateAgentCommand(NewLoadAgent()))
	rootCmd.AddCommand(CreateAgentCommand(NewExportAgent()))
}
