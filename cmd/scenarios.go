package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yasut0ra/rank-bandit-lab/bandit/scenario"
)

// scenariosCmd lists the embedded scenario catalog
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the embedded experiment scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scenario.List() {
			s, err := scenario.Load(name)
			if err != nil {
				logrus.Fatalf("Loading scenario %q failed: %v", name, err)
			}
			fmt.Printf("%-22s %3d docs  %s\n", name, len(s.Documents), s.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
