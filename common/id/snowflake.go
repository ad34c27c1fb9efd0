package id

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
)

// Generator produces unique identifiers for messages and custom agents.
// It is injected rather than accessed globally so tests can assert
// deterministic ids.
type Generator interface {
	New() string
}

// Snowflake generates time-ordered unique ids using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator for the given node ID.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node: %w", err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) New() string {
	return s.node.Generate().String()
}

// Sequence is a deterministic Generator for tests. Ids are "seq-1",
// "seq-2", and so on.
type Sequence struct {
	n atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) New() string {
	return fmt.Sprintf("seq-%d", s.n.Add(1))
}
