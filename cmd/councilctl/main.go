package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "councilctl",
		Short: "Run council debates from the terminal",
		Long:  "councilctl drives the debate orchestrator without the HTTP server: pick participants, submit a topic, and watch the turns play back in your terminal.",
	}

	rootCmd.AddCommand(newDebateCmd())
	rootCmd.AddCommand(newAgentsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
