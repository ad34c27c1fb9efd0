package main

import (
	"context"
	"fmt"

	"council.app/council/core/config"
	"council.app/council/internal/roster"
	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the council roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAgents(cmd.Context())
		},
	}
}

func listAgents(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, err := roster.NewFileRepository(cfg.Roster.Path)
	if err != nil {
		return err
	}
	registry, err := roster.NewRegistry(ctx, repo)
	if err != nil {
		return err
	}

	for _, a := range registry.List() {
		kind := "custom"
		if registry.IsBuiltin(a.ID) {
			kind = "builtin"
		}
		fmt.Printf("%-12s  %-8s  %s — %s\n", a.ID, kind, a.FullName, a.Personality)
	}
	return nil
}
