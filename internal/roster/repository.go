package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"council.app/council/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrCorruptRoster indicates stored agent data that cannot be decoded. The
// registry treats it as "no custom agents" rather than failing boot.
var ErrCorruptRoster = errors.New("corrupt roster data")

// Repository persists the custom (non-builtin) agents.
type Repository interface {
	Load(ctx context.Context) ([]model.Agent, error)
	Save(ctx context.Context, agents []model.Agent) error
}

// FileRepository stores custom agents as a JSON file on local disk.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("roster path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating roster directory: %w", err)
		}
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) Load(ctx context.Context) ([]model.Agent, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var agents []model.Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRoster, err)
	}
	return agents, nil
}

func (r *FileRepository) Save(ctx context.Context, agents []model.Agent) error {
	data, err := json.MarshalIndent(agents, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}

	// Atomic write: write to temp file, then rename
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing roster temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming roster file: %w", err)
	}
	return nil
}

// RedisRepository stores custom agents under a single key.
type RedisRepository struct {
	client *redis.Client
	key    string
}

func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) Load(ctx context.Context) ([]model.Agent, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading roster key: %w", err)
	}

	var agents []model.Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRoster, err)
	}
	return agents, nil
}

func (r *RedisRepository) Save(ctx context.Context, agents []model.Agent) error {
	data, err := json.Marshal(agents)
	if err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing roster key: %w", err)
	}
	return nil
}
