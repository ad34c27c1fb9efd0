package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"council.app/council/internal/model"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentExists   = errors.New("agent id already registered")
	ErrBuiltinAgent  = errors.New("built-in agents cannot be removed")
)

// Registry is the authoritative agent roster: the fixed built-in catalog
// merged with custom agents loaded from the repository. Mutations persist
// the custom subset.
type Registry struct {
	mu       sync.RWMutex
	agents   []model.Agent
	builtins map[string]bool
	repo     Repository
}

// NewRegistry loads stored custom agents and merges them after the built-in
// catalog. Corrupt stored data degrades to builtins only.
func NewRegistry(ctx context.Context, repo Repository) (*Registry, error) {
	r := &Registry{
		agents:   Builtins(),
		builtins: builtinIDs(),
		repo:     repo,
	}

	custom, err := repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptRoster) {
			slog.WarnContext(ctx, "stored roster is corrupt, continuing with built-in agents only", "error", err)
			return r, nil
		}
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	for _, a := range custom {
		if r.builtins[a.ID] {
			slog.WarnContext(ctx, "stored agent shadows a built-in id, skipping", "agent_id", a.ID)
			continue
		}
		r.agents = append(r.agents, a)
	}
	return r, nil
}

// IsBuiltin reports whether the id belongs to the shipped catalog.
func (r *Registry) IsBuiltin(id string) bool {
	return r.builtins[id]
}

// List returns the roster in registration order, built-ins first.
func (r *Registry) List() []model.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Agent(nil), r.agents...)
}

func (r *Registry) Get(id string) (model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.agents {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Agent{}, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
}

// Add registers a custom agent and persists the custom subset.
func (r *Registry) Add(ctx context.Context, agent model.Agent) error {
	if agent.ID == "" {
		return fmt.Errorf("agent id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if a.ID == agent.ID {
			return fmt.Errorf("%w: %s", ErrAgentExists, agent.ID)
		}
	}

	r.agents = append(r.agents, agent)
	if err := r.persistLocked(ctx); err != nil {
		r.agents = r.agents[:len(r.agents)-1]
		return err
	}

	slog.InfoContext(ctx, "agent registered", "agent_id", agent.ID, "name", agent.Name)
	return nil
}

// Remove deletes a custom agent. Built-ins are protected.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.builtins[id] {
		return fmt.Errorf("%w: %s", ErrBuiltinAgent, id)
	}

	for i, a := range r.agents {
		if a.ID == id {
			removed := a
			r.agents = append(r.agents[:i], r.agents[i+1:]...)
			if err := r.persistLocked(ctx); err != nil {
				r.agents = append(r.agents[:i], append([]model.Agent{removed}, r.agents[i:]...)...)
				return err
			}
			slog.InfoContext(ctx, "agent removed", "agent_id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
}

// AttachPortrait sets the agent's portrait URL. Attaching the same portrait
// again is a no-op.
func (r *Registry) AttachPortrait(ctx context.Context, id, portraitURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.agents {
		if a.ID != id {
			continue
		}
		if a.PortraitURL == portraitURL {
			return nil
		}
		prev := r.agents[i].PortraitURL
		r.agents[i].PortraitURL = portraitURL
		if r.builtins[id] {
			// Built-in portraits are runtime-only decoration, nothing to persist.
			return nil
		}
		if err := r.persistLocked(ctx); err != nil {
			r.agents[i].PortraitURL = prev
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
}

func (r *Registry) persistLocked(ctx context.Context) error {
	custom := make([]model.Agent, 0)
	for _, a := range r.agents {
		if !r.builtins[a.ID] {
			custom = append(custom, a)
		}
	}
	if err := r.repo.Save(ctx, custom); err != nil {
		return fmt.Errorf("persisting roster: %w", err)
	}
	return nil
}
