package workorder

import (
	"fmt"
	"math/rand"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator hands out unique, creation-ordered line item ids
type IDGenerator interface {
	NextID() int64
}

// SnowflakeGenerator issues time-ordered ids from a snowflake node
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// Ensure SnowflakeGenerator implements IDGenerator
var _ IDGenerator = (*SnowflakeGenerator)(nil)

// NewSnowflakeGenerator creates a generator for the given node number (0-1023)
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// NextID returns the next id. Safe for concurrent use.
func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}

// NewOrderNumber returns a printable work order number such as "WO-4821"
func NewOrderNumber() string {
	return fmt.Sprintf("WO-%d", rand.Intn(10000))
}
