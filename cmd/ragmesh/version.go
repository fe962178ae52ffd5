package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (injected at build time via ldflags)
var (
	appVersion = "development"
	gitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ragmesh %s (%s)\n", appVersion, gitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
