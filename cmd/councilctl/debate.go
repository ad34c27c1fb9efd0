package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"council.app/council/common/id"
	"council.app/council/common/llm"
	"council.app/council/core/config"
	"council.app/council/internal/attachment"
	"council.app/council/internal/debate"
	"council.app/council/internal/model"
	"council.app/council/internal/roster"
	"council.app/council/internal/session"
	"github.com/spf13/cobra"
)

func newDebateCmd() *cobra.Command {
	var participants []string

	cmd := &cobra.Command{
		Use:   "debate [topic]",
		Short: "Run one debate round and print turns as they play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebate(cmd.Context(), args[0], participants)
		},
	}

	cmd.Flags().StringSliceVarP(&participants, "participants", "a", nil,
		"agent ids to seat (default: the full built-in catalog)")
	return cmd
}

func runDebate(ctx context.Context, topic string, participantIDs []string) error {
	// CLI runs are interactive; keep log noise out of the transcript.
	slog.SetLogLoggerLevel(slog.LevelWarn)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ids, err := id.NewSnowflake(cfg.Session.NodeID)
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

	var seated []model.Agent
	if len(participantIDs) == 0 {
		seated = registry.List()
	} else {
		for _, pid := range participantIDs {
			agent, err := registry.Get(strings.TrimSpace(pid))
			if err != nil {
				return err
			}
			seated = append(seated, agent)
		}
	}

	client, err := llm.New(llm.Config{
		Provider: cfg.DebateLLM.Provider,
		APIKey:   cfg.DebateLLM.APIKey,
		BaseURL:  cfg.DebateLLM.BaseURL,
		Model:    cfg.DebateLLM.Model,
	})
	if err != nil {
		return err
	}

	manager := session.NewManager(
		debate.NewGateway(client, cfg.DebateLLM.MaxTokens),
		attachment.NewCollector(),
		ids,
		session.WithConcludeDwell(cfg.Session.ConcludeDwell),
	)
	manager.SetParticipants(seated)

	names := make(map[string]string, len(seated))
	for _, a := range seated {
		names[a.ID] = a.Name
	}

	fmt.Printf("Convening %d council members on: %s\n\n", len(seated), topic)
	if err := manager.Submit(ctx, topic); err != nil {
		return err
	}

	printed := 0
	for {
		snap := manager.Snapshot()
		for _, m := range snap.Messages[printed:] {
			name := names[m.AgentID]
			if name == "" {
				name = m.AgentID
			}
			fmt.Printf("[%s] %s\n\n", name, m.Content)
			printed++
		}

		switch snap.Status {
		case model.StatusFinished:
			fmt.Printf("=== Consensus ===\n%s\n", snap.Consensus)
			if snap.Insights != nil && snap.Insights.Narrative != "" {
				fmt.Printf("\n=== Observer report ===\n%s\n", snap.Insights.Narrative)
			}
			return nil
		case model.StatusError:
			return fmt.Errorf("round failed: %s", snap.ErrorMessage)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
